package calc

import (
	"fmt"

	hjson "github.com/hjson/hjson-go/v4"
)

// =============================================================================
// COMPOSITE HEALTH SCORE
// Six metrics map onto bounded 1-10 sub-scores via linear scaling against a
// benchmark range, then combine with fixed weights into one composite score.
// Absent metrics substitute a neutral default so the scorer is total.
// =============================================================================

// Range is a benchmark band for one metric: Low scores 1, High scores 10.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Benchmarks holds the tunable benchmark bands per scored metric.
// CostEfficiency is special: lower is better, so Low is the best (fully
// scored) ratio and High the worst.
type Benchmarks struct {
	GrossMargin      Range `json:"gross_margin"`
	OperatingMargin  Range `json:"operating_margin"`
	EBITDAMargin     Range `json:"ebitda_margin"`
	PretaxMargin     Range `json:"pretax_margin"`
	InterestCoverage Range `json:"interest_coverage"`
	CostEfficiency   Range `json:"cost_efficiency"`
}

// DefaultBenchmarks returns the standard benchmark bands:
// gross margin is best at >=80% and worst at <=40%, the other margins scale
// over 0-20%, interest coverage over 1-15x, and cost efficiency is best at
// <=20% of revenue and worst at >=50%.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		GrossMargin:      Range{Low: 0.4, High: 0.8},
		OperatingMargin:  Range{Low: 0.0, High: 0.2},
		EBITDAMargin:     Range{Low: 0.0, High: 0.2},
		PretaxMargin:     Range{Low: 0.0, High: 0.2},
		InterestCoverage: Range{Low: 1, High: 15},
		CostEfficiency:   Range{Low: 0.2, High: 0.5},
	}
}

// LoadBenchmarks parses benchmark bands from HJSON (comments allowed, so the
// tuning file can document each band). Bands missing from the file keep their
// defaults.
func LoadBenchmarks(data []byte) (Benchmarks, error) {
	b := DefaultBenchmarks()
	if err := hjson.Unmarshal(data, &b); err != nil {
		return Benchmarks{}, fmt.Errorf("failed to parse benchmarks: %w", err)
	}
	for name, r := range map[string]Range{
		"gross_margin":      b.GrossMargin,
		"operating_margin":  b.OperatingMargin,
		"ebitda_margin":     b.EBITDAMargin,
		"pretax_margin":     b.PretaxMargin,
		"interest_coverage": b.InterestCoverage,
		"cost_efficiency":   b.CostEfficiency,
	} {
		if r.High <= r.Low {
			return Benchmarks{}, fmt.Errorf("benchmark %s: high (%v) must exceed low (%v)", name, r.High, r.Low)
		}
	}
	return b, nil
}

// Sub-score weights. They sum to 1.0, so the composite inherits the [1, 10]
// bounds of the clamped sub-scores.
const (
	weightGrossMargin      = 0.25
	weightOperatingMargin  = 0.20
	weightEBITDAMargin     = 0.15
	weightPretaxMargin     = 0.15
	weightInterestCoverage = 0.15
	weightCostEfficiency   = 0.10
)

// Neutral defaults substituted when a scored metric is absent. Margins and
// coverage default to the bottom of their bands; cost efficiency defaults to
// 1.0 (all revenue consumed by cost), the pessimistic end.
const (
	neutralMargin         = 0.0
	neutralCoverage       = 0.0
	neutralCostEfficiency = 1.0
)

// CompositeScore computes the weighted composite health score on the default
// benchmarks. It never fails and always returns a value in [1, 10].
func CompositeScore(m Metrics) float64 {
	return CompositeScoreWith(m, DefaultBenchmarks())
}

// CompositeScoreWith computes the composite score against explicit benchmark
// bands.
func CompositeScoreWith(m Metrics, b Benchmarks) float64 {
	gm := m.GetOr(MetricGrossMargin, neutralMargin)
	om := m.GetOr(MetricOperatingMargin, neutralMargin)
	ebm := m.GetOr(MetricEBITDAMargin, neutralMargin)
	ptm := m.GetOr(MetricPretaxMargin, neutralMargin)
	icr := m.GetOr(MetricInterestCoverage, neutralCoverage)
	ce := m.GetOr(MetricCostEfficiency, neutralCostEfficiency)

	// Lower cost ratios are better, so the value is inverted into a
	// higher-is-better scale before the same clamped scaling applies.
	invertedCost := b.CostEfficiency.High - ce

	return weightGrossMargin*scale(gm, b.GrossMargin.Low, b.GrossMargin.High) +
		weightOperatingMargin*scale(om, b.OperatingMargin.Low, b.OperatingMargin.High) +
		weightEBITDAMargin*scale(ebm, b.EBITDAMargin.Low, b.EBITDAMargin.High) +
		weightPretaxMargin*scale(ptm, b.PretaxMargin.Low, b.PretaxMargin.High) +
		weightInterestCoverage*scale(icr, b.InterestCoverage.Low, b.InterestCoverage.High) +
		weightCostEfficiency*scale(invertedCost, 0, b.CostEfficiency.High-b.CostEfficiency.Low)
}

// scale maps value linearly from [low, high] onto [0, 10], then clamps to
// [1, 10]. Every sub-score passes through here, including the inverted cost
// ratio, so no band can push the composite outside its bounds.
func scale(value, low, high float64) float64 {
	score := (value - low) / (high - low) * 10
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
