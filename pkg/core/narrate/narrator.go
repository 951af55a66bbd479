// Package narrate turns a metrics record and composite score into a one or
// two sentence financial health statement. The LLM-backed narrator is a
// pluggable capability; a deterministic fallback keeps the pipeline usable
// when no model is configured or the model returns nothing.
package narrate

import (
	"context"
	"fmt"
	"strings"

	"filing_health/pkg/core/calc"
)

// Narrator generates a financial health statement from computed metrics.
type Narrator interface {
	Summarize(ctx context.Context, metrics calc.Metrics, score float64) (string, error)
}

// Summarize runs the configured narrator and falls back to the deterministic
// statement when the narrator is nil, errors, or returns empty output.
func Summarize(ctx context.Context, n Narrator, metrics calc.Metrics, score float64) string {
	if n != nil {
		statement, err := n.Summarize(ctx, metrics, score)
		statement = strings.TrimSpace(statement)
		if err == nil && statement != "" {
			return statement
		}
	}
	statement, _ := FallbackNarrator{}.Summarize(ctx, metrics, score)
	return statement
}

// FallbackNarrator formats the metrics record into a fixed-template
// statement. It is deterministic and never fails.
type FallbackNarrator struct{}

var _ Narrator = FallbackNarrator{}

// Summarize implements Narrator.
func (FallbackNarrator) Summarize(_ context.Context, metrics calc.Metrics, score float64) (string, error) {
	return fmt.Sprintf(
		"Composite financial health score of %.1f out of 10, based on a gross margin of %.1f%%, "+
			"operating margin of %.1f%%, EBITDA margin of %.1f%%, pre-tax margin of %.1f%%, "+
			"interest coverage of %.1fx, and a cost-to-revenue ratio of %.2f.",
		score,
		metrics.GetOr(calc.MetricGrossMargin, 0)*100,
		metrics.GetOr(calc.MetricOperatingMargin, 0)*100,
		metrics.GetOr(calc.MetricEBITDAMargin, 0)*100,
		metrics.GetOr(calc.MetricPretaxMargin, 0)*100,
		metrics.GetOr(calc.MetricInterestCoverage, 0),
		metrics.GetOr(calc.MetricCostEfficiency, 0),
	), nil
}

// buildPrompt renders the metrics into the narration prompt shared by LLM
// narrators.
func buildPrompt(metrics calc.Metrics, score float64) string {
	return fmt.Sprintf(
		"Based on the following financial metrics, generate a personalized statement about the company's financial health:\n"+
			"Gross Margin: %.1f%%\n"+
			"Operating Margin: %.1f%%\n"+
			"EBITDA Margin: %.1f%%\n"+
			"Pre-tax Margin: %.1f%%\n"+
			"Interest Coverage Ratio: %.1f\n"+
			"Cost Efficiency (COGS/Revenue): %.2f\n"+
			"Composite Financial Health Score: %.1f (scale 1 to 10)\n\n"+
			"Write one or two sentences summarizing the overall financial health of the company.",
		metrics.GetOr(calc.MetricGrossMargin, 0)*100,
		metrics.GetOr(calc.MetricOperatingMargin, 0)*100,
		metrics.GetOr(calc.MetricEBITDAMargin, 0)*100,
		metrics.GetOr(calc.MetricPretaxMargin, 0)*100,
		metrics.GetOr(calc.MetricInterestCoverage, 0),
		metrics.GetOr(calc.MetricCostEfficiency, 0),
		score,
	)
}
