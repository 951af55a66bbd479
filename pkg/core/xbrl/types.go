// Package xbrl extracts standardized financial facts from the inline XBRL
// block of SEC filings. It resolves tag-name aliases against a priority table,
// reconciles two resolution strategies, and always returns a well-typed result
// even for malformed input.
package xbrl

// Fact is one of the canonical financial quantities the pipeline targets.
type Fact string

const (
	FactRevenue         Fact = "Revenue"
	FactCostOfGoodsSold Fact = "Cost of Goods Sold"
	FactOperatingIncome Fact = "Operating Income"
	// FactCombinedDA is the single combined depreciation-and-amortization
	// figure many filers tag. It is split 50/50 at reconciliation.
	FactCombinedDA      Fact = "Depreciation & Amortization"
	FactInterestExpense Fact = "Interest Expense"
	FactIncomeBeforeTax Fact = "Income Before Tax"
)

// CanonicalFacts lists the resolvable facts in presentation order.
var CanonicalFacts = []Fact{
	FactRevenue,
	FactCostOfGoodsSold,
	FactOperatingIncome,
	FactCombinedDA,
	FactInterestExpense,
	FactIncomeBeforeTax,
}

// FactSet holds the reconciled facts for a single filing.
// A nil field means the fact could not be resolved from the document.
type FactSet struct {
	Revenue         *float64 `json:"revenue"`
	CostOfGoodsSold *float64 `json:"cost_of_goods_sold"`
	OperatingIncome *float64 `json:"operating_income"`
	Depreciation    *float64 `json:"depreciation"`
	Amortization    *float64 `json:"amortization"`
	InterestExpense *float64 `json:"interest_expense"`
	IncomeBeforeTax *float64 `json:"income_before_tax"`
}

// IsEmpty reports whether no fact was resolved at all.
func (fs FactSet) IsEmpty() bool {
	return fs.Revenue == nil &&
		fs.CostOfGoodsSold == nil &&
		fs.OperatingIncome == nil &&
		fs.Depreciation == nil &&
		fs.Amortization == nil &&
		fs.InterestExpense == nil &&
		fs.IncomeBeforeTax == nil
}

// Resolution holds the facts resolved by a single strategy, together with the
// alias rank that produced each value so a later, higher-priority annotation
// can overwrite an earlier one.
type Resolution struct {
	values map[Fact]float64
	ranks  map[Fact]int
}

// NewResolution returns an empty resolution.
func NewResolution() Resolution {
	return Resolution{
		values: make(map[Fact]float64),
		ranks:  make(map[Fact]int),
	}
}

// Value returns the resolved value for a fact, if any.
func (r Resolution) Value(f Fact) (float64, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Len returns the number of facts this strategy resolved.
func (r Resolution) Len() int {
	return len(r.values)
}

// observe records an annotation for a fact. The first annotation wins, but a
// strictly higher-priority alias (lower rank) seen later overwrites it.
func (r Resolution) observe(f Fact, value float64, rank int) {
	existing, ok := r.ranks[f]
	if ok && rank >= existing {
		return
	}
	r.values[f] = value
	r.ranks[f] = rank
}

func floatPtr(f float64) *float64 { return &f }
