package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filing_health/pkg/core/pipeline"
)

// ReportRepository stores and retrieves pipeline reports per company.
type ReportRepository interface {
	Save(ctx context.Context, ticker, cik, accession string, report *pipeline.Report) (string, error)
	Load(ctx context.Context, ticker string) (*pipeline.Report, error)
}

// ReportRepo is the Postgres-backed ReportRepository. It owns no connection
// lifecycle; the pool is injected by the caller.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepo creates a repository over an existing connection pool.
func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

var _ ReportRepository = (*ReportRepo)(nil)

// EnsureSchema creates the health_reports table if it does not exist.
func (r *ReportRepo) EnsureSchema(ctx context.Context) error {
	if r.pool == nil {
		return fmt.Errorf("no database pool")
	}

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS health_reports (
			id UUID PRIMARY KEY,
			ticker TEXT NOT NULL,
			cik TEXT NOT NULL,
			accession TEXT NOT NULL,
			report_json JSONB NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (ticker, accession)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Save upserts a report for a ticker and filing accession, returning the row
// ID.
func (r *ReportRepo) Save(ctx context.Context, ticker, cik, accession string, report *pipeline.Report) (string, error) {
	if r.pool == nil {
		return "", fmt.Errorf("no database pool")
	}

	jsonData, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO health_reports (id, ticker, cik, accession, report_json, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker, accession)
		DO UPDATE SET
			report_json = EXCLUDED.report_json,
			score = EXCLUDED.score,
			created_at = EXCLUDED.created_at
		RETURNING id;
	`

	var savedID string
	err = r.pool.QueryRow(ctx, query, id, ticker, cik, accession, jsonData, report.Score, time.Now()).Scan(&savedID)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return savedID, nil
}

// Load retrieves the most recent report for a ticker, or nil when none is
// stored.
func (r *ReportRepo) Load(ctx context.Context, ticker string) (*pipeline.Report, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("no database pool")
	}

	var jsonData []byte
	query := `
		SELECT report_json FROM health_reports
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	err := r.pool.QueryRow(ctx, query, ticker).Scan(&jsonData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var report pipeline.Report
	if err := json.Unmarshal(jsonData, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}
