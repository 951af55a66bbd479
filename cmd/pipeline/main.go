package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"filing_health/pkg/core/narrate"
	"filing_health/pkg/core/pipeline"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	filingPath := resolveFilingPath()
	fmt.Printf("Parsing filing: %s\n", filingPath)

	data, err := os.ReadFile(filingPath)
	if err != nil {
		log.Fatalf("Failed to read filing: %v", err)
	}

	var narrator narrate.Narrator
	if os.Getenv("GEMINI_API_KEY") != "" {
		narrator = &narrate.GeminiNarrator{}
	} else {
		log.Println("GEMINI_API_KEY not set; using deterministic summary.")
	}

	orch := pipeline.NewOrchestrator(narrator)
	report := orch.Run(context.Background(), string(data))

	printReport(report)
}

// resolveFilingPath takes the filing file from argv, or picks the first file
// in the local filing store, which the fetcher lays out as
// sec-edgar-filings/<cik>/10-K/<accession>/full-filing.txt.
func resolveFilingPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}

	const baseDir = "sec-edgar-filings"
	var found string
	filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		log.Fatalf("No filing argument given and no filings found under %s.", baseDir)
	}
	return found
}

func printReport(report *pipeline.Report) {
	fmt.Println("\nExtracted Financial Data:")
	printFact := func(name string, v *float64) {
		if v == nil {
			fmt.Printf("  %-22s <absent>\n", name+":")
			return
		}
		fmt.Printf("  %-22s %.2f\n", name+":", *v)
	}
	printFact("Revenue", report.Facts.Revenue)
	printFact("Cost of Goods Sold", report.Facts.CostOfGoodsSold)
	printFact("Operating Income", report.Facts.OperatingIncome)
	printFact("Depreciation", report.Facts.Depreciation)
	printFact("Amortization", report.Facts.Amortization)
	printFact("Interest Expense", report.Facts.InterestExpense)
	printFact("Income Before Tax", report.Facts.IncomeBeforeTax)

	fmt.Println("\nCalculated Metrics and Diagnostics:")
	names := make([]string, 0, len(report.Metrics))
	for name := range report.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-26s %.4f\n", name+":", report.Metrics[name])
	}

	fmt.Printf("\nComposite Financial Health Score (1 to 10): %.2f\n", report.Score)

	fmt.Println("\nFinancial Health Statement:")
	fmt.Println(report.Narrative)

	if report.Facts.IsEmpty() {
		fmt.Println("\nNote: no facts were resolved from this filing; metrics above reflect neutral defaults.")
	}
}
