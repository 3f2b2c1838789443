package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"equity_research/pkg/models"
)

// ReportRepository is the persistence boundary the pipeline writes through.
// A custom implementation can be injected for tests or file-based output.
type ReportRepository interface {
	Save(ctx context.Context, report *models.Report) error
	Load(ctx context.Context, ticker string) (*models.Report, error)
}

// ReportRepo stores one report per ticker as a JSONB blob, latest run wins.
// Schema:
//
//	CREATE TABLE IF NOT EXISTS research_reports (
//	  ticker TEXT PRIMARY KEY,
//	  run_id UUID,
//	  report_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ReportRepo struct {
	pool *pgxpool.Pool
}

var _ ReportRepository = (*ReportRepo)(nil)

// NewReportRepo creates a repository over an open pool.
func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Save upserts the report keyed by ticker.
func (r *ReportRepo) Save(ctx context.Context, report *models.Report) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO research_reports (ticker, run_id, report_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			report_json = EXCLUDED.report_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.pool.Exec(ctx, query, report.Profile.Ticker, report.RunID, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves the latest report for a ticker.
func (r *ReportRepo) Load(ctx context.Context, ticker string) (*models.Report, error) {
	var jsonData []byte
	err := r.pool.QueryRow(ctx,
		`SELECT report_json FROM research_reports WHERE ticker = $1`, ticker).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no report found for ticker %s", ticker)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(jsonData, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}
