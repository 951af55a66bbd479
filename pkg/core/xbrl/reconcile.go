package xbrl

// =============================================================================
// RECONCILIATION
// Merges the streaming scan (primary) with the whole-fragment query
// (secondary cross-check) and fills gaps by derivation. Every rule is
// conditional on input presence and degrades to leaving the fact absent, so
// reconciliation is total.
// =============================================================================

// ReconcilePolicy controls the derivation choices filers' inconsistent
// tagging forces on us. The zero value is NOT the default; use
// DefaultPolicy.
type ReconcilePolicy struct {
	// SubtractInterestForEBT derives a missing Income Before Tax as
	// Operating Income minus Interest Expense (when interest is present)
	// instead of Operating Income alone.
	SubtractInterestForEBT bool

	// PreferQueryRevenue makes the query strategy's Revenue override the
	// streaming value unconditionally instead of only filling an absence.
	PreferQueryRevenue bool
}

// DefaultPolicy returns the documented reconciliation defaults: interest is
// subtracted in the pre-tax fallback, and query revenue only fills gaps.
func DefaultPolicy() ReconcilePolicy {
	return ReconcilePolicy{
		SubtractInterestForEBT: true,
		PreferQueryRevenue:     false,
	}
}

// Reconcile merges two strategy resolutions into a final FactSet.
func Reconcile(stream, query Resolution, policy ReconcilePolicy) FactSet {
	fs := FactSet{
		Revenue:         resolved(stream, FactRevenue),
		CostOfGoodsSold: resolved(stream, FactCostOfGoodsSold),
		OperatingIncome: resolved(stream, FactOperatingIncome),
		InterestExpense: resolved(stream, FactInterestExpense),
		IncomeBeforeTax: resolved(stream, FactIncomeBeforeTax),
	}

	// Revenue cross-check against the whole-fragment query.
	if qr, ok := query.Value(FactRevenue); ok {
		if fs.Revenue == nil || policy.PreferQueryRevenue {
			fs.Revenue = floatPtr(qr)
		}
	}

	// A combined D&A figure splits evenly across both components. Values a
	// filer tagged separately would already live in the stream resolution;
	// the combined concept is carried on its own channel so the split never
	// clobbers them.
	if combined, ok := combinedDA(stream, query); ok {
		fs.Depreciation = floatPtr(combined / 2)
		fs.Amortization = floatPtr(combined / 2)
	}

	// Pre-tax income fallback from operating income.
	if fs.IncomeBeforeTax == nil && fs.OperatingIncome != nil {
		derived := *fs.OperatingIncome
		if policy.SubtractInterestForEBT && fs.InterestExpense != nil {
			derived -= *fs.InterestExpense
		}
		fs.IncomeBeforeTax = floatPtr(derived)
	}

	return fs
}

// combinedDA returns the combined depreciation-and-amortization figure from
// whichever strategy found one, preferring the streaming scan.
func combinedDA(stream, query Resolution) (float64, bool) {
	if v, ok := stream.Value(FactCombinedDA); ok {
		return v, true
	}
	if v, ok := query.Value(FactCombinedDA); ok {
		return v, true
	}
	return 0, false
}

func resolved(r Resolution, f Fact) *float64 {
	if v, ok := r.Value(f); ok {
		return floatPtr(v)
	}
	return nil
}

// ExtractFacts runs the full resolution pipeline over raw filing text with
// the default concept table and policy: normalize, scan, cross-check,
// reconcile. It is total and idempotent; malformed input yields an all-absent
// FactSet.
func ExtractFacts(documentText string) FactSet {
	return ExtractFactsWith(documentText, DefaultConceptTable(), DefaultPolicy())
}

// ExtractFactsWith is ExtractFacts with an explicit concept table and
// reconciliation policy.
func ExtractFactsWith(documentText string, table ConceptTable, policy ReconcilePolicy) FactSet {
	fragment := ExtractFragment(documentText)
	stream := ResolveStream(fragment, table)
	query := ResolveQuery(fragment, table)
	return Reconcile(stream, query, policy)
}
