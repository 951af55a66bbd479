// Package calc derives financial metrics and the composite health score from
// resolved filing facts. Every metric states its exact precondition; a metric
// whose inputs are missing or ill-defined is simply absent from the result,
// never defaulted here.
package calc

import "filing_health/pkg/core/xbrl"

// Metric names as they appear in a Metrics record.
const (
	MetricEBIT              = "EBIT"
	MetricEBITDA            = "EBITDA"
	MetricEBT               = "EBT"
	MetricGrossProfit       = "Gross Profit"
	MetricGrossMargin       = "Gross Margin"
	MetricOperatingMargin   = "Operating Margin"
	MetricEBITDAMargin      = "EBITDA Margin"
	MetricPretaxMargin      = "Pre-tax Margin"
	MetricInterestCoverage  = "Interest Coverage Ratio"
	MetricDepreciationRatio = "Depreciation Ratio"
	MetricAmortizationRatio = "Amortization Ratio"
	MetricCostEfficiency    = "Cost Efficiency"
)

// Metrics maps metric name to value. A missing key means the metric's
// precondition was unmet for this filing.
type Metrics map[string]float64

// Get returns a metric value and whether it is present.
func (m Metrics) Get(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}

// GetOr returns the metric value, or def when absent.
func (m Metrics) GetOr(name string, def float64) float64 {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}

// ComputeMetrics derives the metrics record from a fact set.
//
//	EBIT    = Operating Income, else Revenue - COGS
//	EBITDA  = EBIT + Depreciation (if present) + Amortization (if present)
//	EBT     = Income Before Tax, else EBIT - Interest Expense, else EBIT
//
// plus the ratio diagnostics, each guarded against missing inputs and a zero
// denominator.
func ComputeMetrics(facts xbrl.FactSet) Metrics {
	m := make(Metrics)

	var ebit *float64
	if facts.OperatingIncome != nil {
		v := *facts.OperatingIncome
		ebit = &v
	} else if facts.Revenue != nil && facts.CostOfGoodsSold != nil {
		v := *facts.Revenue - *facts.CostOfGoodsSold
		ebit = &v
	}

	var ebitda *float64
	if ebit != nil {
		v := *ebit
		if facts.Depreciation != nil {
			v += *facts.Depreciation
		}
		if facts.Amortization != nil {
			v += *facts.Amortization
		}
		ebitda = &v
	}

	var ebt *float64
	if facts.IncomeBeforeTax != nil {
		v := *facts.IncomeBeforeTax
		ebt = &v
	} else if ebit != nil {
		v := *ebit
		if facts.InterestExpense != nil {
			v -= *facts.InterestExpense
		}
		ebt = &v
	}

	put := func(name string, v *float64) {
		if v != nil {
			m[name] = *v
		}
	}
	put(MetricEBIT, ebit)
	put(MetricEBITDA, ebitda)
	put(MetricEBT, ebt)

	revenueOK := facts.Revenue != nil && *facts.Revenue != 0

	if revenueOK && facts.CostOfGoodsSold != nil {
		grossProfit := *facts.Revenue - *facts.CostOfGoodsSold
		m[MetricGrossProfit] = grossProfit
		m[MetricGrossMargin] = grossProfit / *facts.Revenue
		m[MetricCostEfficiency] = *facts.CostOfGoodsSold / *facts.Revenue
	}
	if revenueOK && facts.OperatingIncome != nil {
		m[MetricOperatingMargin] = *facts.OperatingIncome / *facts.Revenue
	}
	if revenueOK && ebitda != nil {
		m[MetricEBITDAMargin] = *ebitda / *facts.Revenue
	}
	if revenueOK && ebt != nil {
		m[MetricPretaxMargin] = *ebt / *facts.Revenue
	}
	if facts.OperatingIncome != nil && facts.InterestExpense != nil && *facts.InterestExpense != 0 {
		m[MetricInterestCoverage] = *facts.OperatingIncome / *facts.InterestExpense
	}
	if revenueOK && facts.Depreciation != nil {
		m[MetricDepreciationRatio] = *facts.Depreciation / *facts.Revenue
	}
	if revenueOK && facts.Amortization != nil {
		m[MetricAmortizationRatio] = *facts.Amortization / *facts.Revenue
	}

	return m
}
