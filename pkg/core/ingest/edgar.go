// Package ingest provides SEC EDGAR API integration for fetching company
// filings. The core pipeline never imports this package; it only consumes the
// text ingest hands it.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// SEC EDGAR API endpoints
	SECSubmissionsURL = "https://data.sec.gov/submissions/CIK%s.json"
	SECFilingURL      = "https://www.sec.gov/Archives/edgar/data/%s/%s"
	SECTickerMapURL   = "https://www.sec.gov/files/company_tickers.json"

	// DefaultUserAgent is used when SEC_USER_AGENT is not set. The SEC
	// requires a contact address in the User-Agent header.
	DefaultUserAgent = "FilingHealth/1.0 (contact@example.com)"
)

// userAgent returns the SEC-required User-Agent header value.
func userAgent() string {
	if ua := os.Getenv("SEC_USER_AGENT"); ua != "" {
		return ua
	}
	return DefaultUserAgent
}

// =============================================================================
// SEC EDGAR DATA TYPES
// =============================================================================

// SECCompanyInfo represents the top-level company submission response.
type SECCompanyInfo struct {
	CIK     string     `json:"cik"`
	Name    string     `json:"name"`
	Tickers []string   `json:"tickers"`
	Filings SECFilings `json:"filings"`
}

// SECFilings contains recent and older filing lists.
type SECFilings struct {
	Recent SECRecentFilings `json:"recent"`
}

// SECRecentFilings holds arrays of filing attributes (parallel arrays).
type SECRecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"` // e.g., "0000320193-24-000123"
	FilingDate      []string `json:"filingDate"`      // e.g., "2024-11-01"
	ReportDate      []string `json:"reportDate"`      // Fiscal period end
	Form            []string `json:"form"`            // "10-K", "10-Q", "8-K"
	PrimaryDocument []string `json:"primaryDocument"` // filename
}

// Filing represents a single SEC filing (denormalized from parallel arrays).
type Filing struct {
	AccessionNumber string    `json:"accession_number"`
	FilingDate      time.Time `json:"filing_date"`
	ReportDate      time.Time `json:"report_date"`
	FormType        string    `json:"form_type"`
	PrimaryDocument string    `json:"primary_document"`
	URL             string    `json:"url"` // Constructed download URL
}

// =============================================================================
// SEC EDGAR CLIENT
// =============================================================================

// EDGARClient handles SEC EDGAR API requests.
type EDGARClient struct {
	httpClient *http.Client
}

// NewEDGARClient creates a new SEC EDGAR API client.
func NewEDGARClient() *EDGARClient {
	return &EDGARClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchCompanyInfo retrieves company submission data from SEC EDGAR.
//
// CIK should be zero-padded to 10 digits; it is padded automatically if not.
func (c *EDGARClient) FetchCompanyInfo(cik string) (*SECCompanyInfo, error) {
	cik = fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))

	body, err := c.get(fmt.Sprintf(SECSubmissionsURL, cik), "application/json")
	if err != nil {
		return nil, err
	}

	var info SECCompanyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse SEC response: %w", err)
	}
	return &info, nil
}

// GetFilings extracts and returns filings filtered by form type.
//
// formTypes: "10-K", "10-Q", "8-K", etc. Pass nil for all types.
// limit: Maximum number of filings to return (0 = no limit).
func (c *EDGARClient) GetFilings(info *SECCompanyInfo, formTypes []string, limit int) []Filing {
	recent := info.Filings.Recent
	filings := make([]Filing, 0)

	formTypeSet := make(map[string]bool)
	for _, ft := range formTypes {
		formTypeSet[ft] = true
	}

	for i := range recent.AccessionNumber {
		if len(formTypes) > 0 && !formTypeSet[recent.Form[i]] {
			continue
		}

		filingDate, _ := time.Parse("2006-01-02", recent.FilingDate[i])
		reportDate, _ := time.Parse("2006-01-02", recent.ReportDate[i])

		// Format: https://www.sec.gov/Archives/edgar/data/{cik}/{accession-no-dashes}/{document}
		accessionNoDashes := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		downloadURL := fmt.Sprintf(SECFilingURL, info.CIK, accessionNoDashes+"/"+recent.PrimaryDocument[i])

		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      filingDate,
			ReportDate:      reportDate,
			FormType:        recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
			URL:             downloadURL,
		})

		if limit > 0 && len(filings) >= limit {
			break
		}
	}

	return filings
}

// FetchFilingText downloads the raw text of a filing document.
func (c *EDGARClient) FetchFilingText(filing Filing) (string, error) {
	body, err := c.get(filing.URL, "")
	if err != nil {
		return "", fmt.Errorf("failed to download filing %s: %w", filing.AccessionNumber, err)
	}
	return string(body), nil
}

// get performs a GET with the SEC-required headers and returns the body.
func (c *EDGARClient) get(url, accept string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// LookupCIKByTicker finds the CIK for a given ticker symbol using the SEC's
// ticker mapping file.
func (c *EDGARClient) LookupCIKByTicker(ticker string) (string, error) {
	body, err := c.get(SECTickerMapURL, "application/json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// Response structure: { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "..."}, ... }
	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return "", fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	ticker = strings.ToUpper(ticker)
	for _, entry := range mapping {
		if entry.Ticker == ticker {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}
