// This file implements the pipeline.DocumentFetcher interface for live SEC
// data with a local filing store.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilingFetcher fetches the latest 10-K for a company, caching the raw text
// under baseDir (default "sec-edgar-filings") so repeat runs stay offline.
type FilingFetcher struct {
	client  *EDGARClient
	baseDir string
}

// NewFilingFetcher creates a fetcher storing filings under baseDir.
// An empty baseDir uses "sec-edgar-filings" in the working directory.
func NewFilingFetcher(baseDir string) *FilingFetcher {
	if baseDir == "" {
		baseDir = "sec-edgar-filings"
	}
	return &FilingFetcher{
		client:  NewEDGARClient(),
		baseDir: baseDir,
	}
}

// FetchLatestFiling implements pipeline.DocumentFetcher: it returns the raw
// text and accession number of the company's most recent 10-K.
func (f *FilingFetcher) FetchLatestFiling(ctx context.Context, cik string) (string, string, error) {
	info, err := f.client.FetchCompanyInfo(cik)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch company submissions: %w", err)
	}

	filings := f.client.GetFilings(info, []string{"10-K"}, 1)
	if len(filings) == 0 {
		return "", "", fmt.Errorf("no 10-K filings found for CIK %s", cik)
	}
	filing := filings[0]

	if text, ok := f.readLocal(cik, filing.AccessionNumber); ok {
		return text, filing.AccessionNumber, nil
	}

	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	text, err := f.client.FetchFilingText(filing)
	if err != nil {
		return "", "", err
	}
	f.writeLocal(cik, filing.AccessionNumber, text)

	return text, filing.AccessionNumber, nil
}

// localPath returns the on-disk location for a filing:
// <baseDir>/<cik>/10-K/<accession-no-dashes>/full-filing.txt. The pipeline
// CLI walks the same layout for its default input.
func (f *FilingFetcher) localPath(cik, accession string) string {
	accession = strings.ReplaceAll(accession, "-", "")
	return filepath.Join(f.baseDir, cik, "10-K", accession, "full-filing.txt")
}

func (f *FilingFetcher) readLocal(cik, accession string) (string, bool) {
	data, err := os.ReadFile(f.localPath(cik, accession))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (f *FilingFetcher) writeLocal(cik, accession, text string) {
	path := f.localPath(cik, accession)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	os.WriteFile(path, []byte(text), 0644)
}
