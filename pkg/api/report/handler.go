// Package report exposes the health-report pipeline over HTTP.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"filing_health/pkg/core/ingest"
	"filing_health/pkg/core/pipeline"
	"filing_health/pkg/core/store"
)

var (
	orchestrator *pipeline.Orchestrator
	fetcher      pipeline.DocumentFetcher
	repo         store.ReportRepository
	edgarClient  *ingest.EDGARClient
)

// InitHandler wires the handler dependencies. reportRepo may be nil, in which
// case reports are not persisted.
func InitHandler(orch *pipeline.Orchestrator, docFetcher pipeline.DocumentFetcher, reportRepo store.ReportRepository) {
	orchestrator = orch
	fetcher = docFetcher
	repo = reportRepo
	edgarClient = ingest.NewEDGARClient()
}

// HealthReportRequest identifies the company to analyze. CIK is optional when
// Ticker is given; it is then resolved via the SEC ticker mapping.
type HealthReportRequest struct {
	Ticker string `json:"ticker"`
	CIK    string `json:"cik"`
}

// HealthReportResponse carries the pipeline report plus filing provenance.
type HealthReportResponse struct {
	Ticker    string           `json:"ticker"`
	CIK       string           `json:"cik"`
	Accession string           `json:"accession"`
	Report    *pipeline.Report `json:"report"`
}

// HandleHealthReport serves POST /api/report: fetch the latest 10-K, run the
// pipeline, persist best-effort, and return the report.
func HandleHealthReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req HealthReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	cik := strings.TrimSpace(req.CIK)
	if ticker == "" && cik == "" {
		http.Error(w, "ticker or cik required", http.StatusBadRequest)
		return
	}

	if cik == "" {
		resolved, err := edgarClient.LookupCIKByTicker(ticker)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to resolve ticker: %v", err), http.StatusBadGateway)
			return
		}
		cik = resolved
	}

	text, accession, err := fetcher.FetchLatestFiling(r.Context(), cik)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch filing: %v", err), http.StatusBadGateway)
		return
	}

	rep := orchestrator.Run(r.Context(), text)

	if repo != nil {
		// Persistence is best effort; the report is still returned when the
		// database is down.
		if _, err := repo.Save(r.Context(), ticker, cik, accession, rep); err != nil {
			fmt.Printf("[WARNING] failed to persist report for %s: %v\n", ticker, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthReportResponse{
		Ticker:    ticker,
		CIK:       cik,
		Accession: accession,
		Report:    rep,
	})
}
