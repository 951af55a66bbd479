package xbrl

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// =============================================================================
// CONCEPT TABLE
// Maps each canonical fact to the us-gaap concept identifiers filers use for
// it, most preferred first. Alias vocabularies are data: extending coverage
// for a new filer means editing this table (or loading a YAML override), not
// touching resolution logic.
// =============================================================================

// ConceptTable maps a canonical fact to its ordered alias list.
type ConceptTable map[Fact][]string

// DefaultConceptTable returns the built-in us-gaap alias table.
func DefaultConceptTable() ConceptTable {
	return ConceptTable{
		FactRevenue: {
			"us-gaap:SalesRevenueNet",
			"us-gaap:Revenues",
			"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax",
		},
		FactCostOfGoodsSold: {
			"us-gaap:CostOfGoodsSold",
			"us-gaap:CostOfRevenue",
			"us-gaap:CostOfGoodsAndServicesSold",
		},
		FactOperatingIncome: {
			"us-gaap:OperatingIncomeLoss",
			"us-gaap:OperatingIncome",
		},
		FactCombinedDA: {
			"us-gaap:DepreciationDepletionAndAmortization",
			"us-gaap:DepreciationAmortizationAndAccretionNet",
		},
		FactInterestExpense: {
			"us-gaap:InterestExpense",
			"us-gaap:InterestExpenseBenefit",
		},
		FactIncomeBeforeTax: {
			"us-gaap:IncomeBeforeTax",
			"us-gaap:ProfitBeforeTax",
			"us-gaap:PreTaxIncome",
			"us-gaap:IncomeBeforeTaxExpenseBenefit",
			"us-gaap:IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest",
		},
	}
}

// conceptRef identifies the canonical fact an alias denotes and the alias's
// rank within that fact's priority list (0 = most preferred).
type conceptRef struct {
	fact Fact
	rank int
}

// aliasIndex is the inverted table: concept identifier -> (fact, rank).
type aliasIndex map[string]conceptRef

// invert builds the alias lookup index. Built once per resolver run.
func (t ConceptTable) invert() aliasIndex {
	idx := make(aliasIndex)
	for fact, aliases := range t {
		for rank, alias := range aliases {
			// First listing wins if an alias is repeated across facts.
			if _, exists := idx[alias]; !exists {
				idx[alias] = conceptRef{fact: fact, rank: rank}
			}
		}
	}
	return idx
}

// LoadConceptTable parses a YAML alias table keyed by canonical fact name,
// e.g.:
//
//	Revenue:
//	  - us-gaap:SalesRevenueNet
//	  - us-gaap:Revenues
//
// Facts missing from the YAML keep their default alias lists, so an override
// file only needs to mention the facts it changes.
func LoadConceptTable(data []byte) (ConceptTable, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse concept table: %w", err)
	}

	known := make(map[Fact]bool, len(CanonicalFacts))
	for _, f := range CanonicalFacts {
		known[f] = true
	}

	table := DefaultConceptTable()
	for name, aliases := range raw {
		fact := Fact(name)
		if !known[fact] {
			return nil, fmt.Errorf("unknown canonical fact %q in concept table", name)
		}
		if len(aliases) == 0 {
			return nil, fmt.Errorf("canonical fact %q has an empty alias list", name)
		}
		table[fact] = aliases
	}
	return table, nil
}
