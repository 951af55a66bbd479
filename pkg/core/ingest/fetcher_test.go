package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilingFetcherDefaultBaseDir(t *testing.T) {
	f := NewFilingFetcher("")
	if f.baseDir != "sec-edgar-filings" {
		t.Errorf("Expected default base dir, got %q", f.baseDir)
	}
}

func TestFilingStoreLayoutAndRoundTrip(t *testing.T) {
	f := NewFilingFetcher(t.TempDir())
	cik := "0000320193"
	accession := "0000320193-24-000123"

	if _, ok := f.readLocal(cik, accession); ok {
		t.Fatal("Expected a miss before the filing is stored")
	}

	f.writeLocal(cik, accession, "FILING TEXT")

	// Layout shared with the pipeline CLI's default walk:
	// <baseDir>/<cik>/10-K/<accession-no-dashes>/full-filing.txt
	want := filepath.Join(f.baseDir, cik, "10-K", "000032019324000123", "full-filing.txt")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("Expected filing stored at %s: %v", want, err)
	}

	text, ok := f.readLocal(cik, accession)
	if !ok || text != "FILING TEXT" {
		t.Errorf("Round trip failed: got %q (present=%v)", text, ok)
	}
}
