package pipeline

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"filing_health/pkg/core/calc"
	"filing_health/pkg/core/xbrl"
)

// stubNarrator records calls and returns a canned statement.
type stubNarrator struct {
	calls     int
	statement string
}

func (s *stubNarrator) Summarize(_ context.Context, _ calc.Metrics, _ float64) (string, error) {
	s.calls++
	return s.statement, nil
}

func nonFraction(concept string, value string) string {
	return fmt.Sprintf(`<ix:nonFraction name="%s" contextRef="FY" unitRef="usd">%s</ix:nonFraction>`, concept, value)
}

// sampleFiling builds a minimal inline-XBRL annual filing body.
func sampleFiling() string {
	var b strings.Builder
	b.WriteString("<SEC-DOCUMENT>\n<XBRL>\n<html xmlns:ix=\"http://www.xbrl.org/2013/inlineXBRL\"><body>\n")
	b.WriteString(nonFraction("us-gaap:Revenues", "2,000"))
	b.WriteString(nonFraction("us-gaap:CostOfGoodsSold", "800"))
	b.WriteString(nonFraction("us-gaap:OperatingIncomeLoss", "600"))
	b.WriteString(nonFraction("us-gaap:DepreciationDepletionAndAmortization", "100"))
	b.WriteString(nonFraction("us-gaap:InterestExpense", "50"))
	b.WriteString(nonFraction("us-gaap:IncomeBeforeTax", "550"))
	b.WriteString("</body></html>\n</XBRL>\n</SEC-DOCUMENT>")
	return b.String()
}

func TestRunProducesFullReport(t *testing.T) {
	narrator := &stubNarrator{statement: "The company is in solid shape."}
	o := NewOrchestrator(narrator)

	report := o.Run(context.Background(), sampleFiling())

	if report.Facts.Revenue == nil || *report.Facts.Revenue != 2000 {
		t.Fatalf("Expected revenue 2000, got %+v", report.Facts)
	}
	// Depreciation & Amortization 100 splits 50/50.
	if report.Facts.Depreciation == nil || *report.Facts.Depreciation != 50 {
		t.Errorf("Expected depreciation 50, got %+v", report.Facts.Depreciation)
	}
	if report.Facts.Amortization == nil || *report.Facts.Amortization != 50 {
		t.Errorf("Expected amortization 50, got %+v", report.Facts.Amortization)
	}

	// Gross Margin = (2000 - 800) / 2000 = 0.6
	if gm, ok := report.Metrics.Get(calc.MetricGrossMargin); !ok || math.Abs(gm-0.6) > 1e-9 {
		t.Errorf("Expected gross margin 0.6, got %v", gm)
	}
	// EBITDA = 600 + 50 + 50 = 700
	if ebitda, ok := report.Metrics.Get(calc.MetricEBITDA); !ok || ebitda != 700 {
		t.Errorf("Expected EBITDA 700, got %v", ebitda)
	}

	if report.Score < 1 || report.Score > 10 {
		t.Errorf("Score out of range: %v", report.Score)
	}
	if report.Narrative != "The company is in solid shape." {
		t.Errorf("Expected stub narrative, got %q", report.Narrative)
	}
	if narrator.calls != 1 {
		t.Errorf("Expected one narrator call, got %d", narrator.calls)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("Expected GeneratedAt to be set")
	}
}

func TestRunIsRepeatableAndCached(t *testing.T) {
	o := NewOrchestrator(nil)
	doc := sampleFiling()

	first := o.Run(context.Background(), doc)
	second := o.Run(context.Background(), doc)

	if !reflect.DeepEqual(first.Facts, second.Facts) {
		t.Errorf("Facts differ across runs:\n%+v\nvs\n%+v", first.Facts, second.Facts)
	}
	if !reflect.DeepEqual(first.Metrics, second.Metrics) {
		t.Errorf("Metrics differ across runs")
	}
	if first.Score != second.Score {
		t.Errorf("Scores differ: %v vs %v", first.Score, second.Score)
	}
}

func TestRunWithCacheDisabled(t *testing.T) {
	o := NewOrchestrator(nil)
	o.SetCache(nil)

	report := o.Run(context.Background(), sampleFiling())
	if report.Facts.Revenue == nil || *report.Facts.Revenue != 2000 {
		t.Errorf("Expected extraction to work without a cache, got %+v", report.Facts)
	}
}

func TestRunMalformedDocumentIsTotal(t *testing.T) {
	o := NewOrchestrator(nil)
	malformed := `<XBRL><ix:nonFraction name="us-gaap:Revenues">2000</XBRL>`

	report := o.Run(context.Background(), malformed)

	if !report.Facts.IsEmpty() {
		t.Errorf("Expected all facts absent for malformed input, got %+v", report.Facts)
	}
	if len(report.Metrics) != 0 {
		t.Errorf("Expected no metrics, got %v", report.Metrics)
	}
	// All six components fall to their floor of 1: composite is exactly 1.
	if report.Score != 1.0 {
		t.Errorf("Expected floor score 1.0, got %v", report.Score)
	}
	if report.Narrative == "" {
		t.Error("Expected a fallback narrative")
	}
}

func TestSetConceptTableDrivesResolution(t *testing.T) {
	table := xbrl.DefaultConceptTable()
	table[xbrl.FactRevenue] = []string{"custom:TopLine"}

	o := NewOrchestrator(nil)
	o.SetConceptTable(table)

	doc := "<XBRL><root xmlns:ix=\"http://www.xbrl.org/2013/inlineXBRL\">" +
		nonFraction("custom:TopLine", "3,500") +
		"</root></XBRL>"
	report := o.Run(context.Background(), doc)

	if report.Facts.Revenue == nil || *report.Facts.Revenue != 3500 {
		t.Errorf("Expected custom alias to resolve revenue 3500, got %+v", report.Facts.Revenue)
	}
}
