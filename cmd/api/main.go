package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"filing_health/pkg/api/report"
	"filing_health/pkg/core/ingest"
	"filing_health/pkg/core/narrate"
	"filing_health/pkg/core/pipeline"
	"filing_health/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Optional Postgres persistence
	var repo store.ReportRepository
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		ctx := context.Background()
		pool, err := store.Connect(ctx, dbURL)
		if err != nil {
			fmt.Printf("[WARNING] Database unavailable, reports will not be persisted: %v\n", err)
		} else {
			defer pool.Close()
			r := store.NewReportRepo(pool)
			if err := r.EnsureSchema(ctx); err != nil {
				fmt.Printf("[WARNING] Schema setup failed, reports will not be persisted: %v\n", err)
			} else {
				repo = r
			}
		}
	} else {
		fmt.Println("[INFO] DATABASE_URL not set, running without persistence")
	}

	var narrator narrate.Narrator
	if os.Getenv("GEMINI_API_KEY") != "" {
		narrator = &narrate.GeminiNarrator{}
	} else {
		fmt.Println("[INFO] GEMINI_API_KEY not set, using deterministic summaries")
	}

	orch := pipeline.NewOrchestrator(narrator)
	fetcher := ingest.NewFilingFetcher("")
	report.InitHandler(orch, fetcher, repo)

	http.HandleFunc("/api/report", report.HandleHealthReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Filing health API listening on :%s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("Server error: %v\n", err)
		os.Exit(1)
	}
}
