package store

import (
	"context"
	"testing"

	"filing_health/pkg/core/pipeline"
)

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Error("Expected error for empty database URL")
	}
}

func TestConnectRejectsMalformedURL(t *testing.T) {
	if _, err := Connect(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected error for malformed database URL")
	}
}

func TestReportRepoRequiresPool(t *testing.T) {
	ctx := context.Background()
	r := NewReportRepo(nil)

	if err := r.EnsureSchema(ctx); err == nil {
		t.Error("Expected EnsureSchema to fail without a pool")
	}
	if _, err := r.Save(ctx, "AAPL", "0000320193", "0000320193-24-000123", &pipeline.Report{}); err == nil {
		t.Error("Expected Save to fail without a pool")
	}
	if _, err := r.Load(ctx, "AAPL"); err == nil {
		t.Error("Expected Load to fail without a pool")
	}
}
