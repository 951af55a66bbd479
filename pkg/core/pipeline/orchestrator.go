// Package pipeline wires the extraction stages into one run:
// normalize -> resolve -> reconcile -> metrics -> score -> narrate.
package pipeline

import (
	"context"
	"time"

	"filing_health/pkg/core/calc"
	"filing_health/pkg/core/narrate"
	"filing_health/pkg/core/xbrl"
)

// DocumentFetcher retrieves the raw text of a company's latest annual filing.
// Implementations may fetch from:
// - Live SEC EDGAR
// - A local filing store
type DocumentFetcher interface {
	FetchLatestFiling(ctx context.Context, cik string) (text string, accession string, err error)
}

// Report is the full output of one pipeline run over one filing.
type Report struct {
	Facts       xbrl.FactSet `json:"facts"`
	Metrics     calc.Metrics `json:"metrics"`
	Score       float64      `json:"score"`
	Narrative   string       `json:"narrative"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Orchestrator runs the fact-extraction and scoring pipeline. The zero value
// is not usable; construct with NewOrchestrator.
type Orchestrator struct {
	narrator   narrate.Narrator
	cache      *xbrl.FactCache
	table      xbrl.ConceptTable
	policy     xbrl.ReconcilePolicy
	benchmarks calc.Benchmarks
}

// NewOrchestrator creates an orchestrator with default concept table,
// reconciliation policy, benchmarks, and a bounded fact cache.
// narrator may be nil; narration then always uses the deterministic fallback.
func NewOrchestrator(narrator narrate.Narrator) *Orchestrator {
	return &Orchestrator{
		narrator:   narrator,
		cache:      xbrl.NewFactCache(xbrl.DefaultCacheCapacity),
		table:      xbrl.DefaultConceptTable(),
		policy:     xbrl.DefaultPolicy(),
		benchmarks: calc.DefaultBenchmarks(),
	}
}

// SetConceptTable replaces the alias table (e.g. a YAML override).
func (o *Orchestrator) SetConceptTable(table xbrl.ConceptTable) {
	o.table = table
}

// SetPolicy replaces the reconciliation policy.
func (o *Orchestrator) SetPolicy(policy xbrl.ReconcilePolicy) {
	o.policy = policy
}

// SetBenchmarks replaces the scoring benchmark bands.
func (o *Orchestrator) SetBenchmarks(b calc.Benchmarks) {
	o.benchmarks = b
}

// SetCache replaces the fact cache. A nil cache disables caching.
func (o *Orchestrator) SetCache(cache *xbrl.FactCache) {
	o.cache = cache
}

// Run executes the pipeline over raw filing text. It is total: malformed
// input produces a report with absent facts, sparse metrics, and a score
// computed from neutral defaults.
func (o *Orchestrator) Run(ctx context.Context, documentText string) *Report {
	facts := o.resolveFacts(documentText)
	metrics := calc.ComputeMetrics(facts)
	score := calc.CompositeScoreWith(metrics, o.benchmarks)
	narrative := narrate.Summarize(ctx, o.narrator, metrics, score)

	return &Report{
		Facts:       facts,
		Metrics:     metrics,
		Score:       score,
		Narrative:   narrative,
		GeneratedAt: time.Now().UTC(),
	}
}

// resolveFacts extracts facts with the cache consulted first. The cache key
// is the content fingerprint, so a changed document never hits a stale entry.
func (o *Orchestrator) resolveFacts(documentText string) xbrl.FactSet {
	if o.cache != nil {
		if facts, ok := o.cache.Get(documentText); ok {
			return facts
		}
	}

	facts := xbrl.ExtractFactsWith(documentText, o.table, o.policy)
	if o.cache != nil {
		o.cache.Put(documentText, facts)
	}
	return facts
}
