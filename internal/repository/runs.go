package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/jackc/pgx/v5"
)

// RunRepository stores run summaries
type RunRepository struct {
	db *Database
}

// Create appends a run summary and returns its id
func (r *RunRepository) Create(ctx context.Context, s *models.RunSummary) (int64, error) {
	start := time.Now()

	picks, err := json.Marshal(s.PicksGraded)
	if err != nil {
		return 0, fmt.Errorf("failed to encode picks graded: %w", err)
	}
	reasons, err := json.Marshal(s.SkipReasons)
	if err != nil {
		return 0, fmt.Errorf("failed to encode skip reasons: %w", err)
	}

	query := `
		INSERT INTO runs (
			season, files_read, files_skipped, rows_seen, rows_graded, rows_skipped,
			picks_graded, skip_reasons, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err = r.db.Pool.QueryRow(
		ctx, query,
		s.Season, s.FilesRead, s.FilesSkipped, s.RowsSeen, s.RowsGraded, s.RowsSkipped,
		picks, reasons, s.StartedAt, s.FinishedAt,
	).Scan(&id)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordDBQuery("insert", "runs", status, time.Since(start).Seconds())

	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

// Latest returns the most recent run of a season, or nil if there is none
func (r *RunRepository) Latest(ctx context.Context, season string) (*models.RunSummary, error) {
	query := `
		SELECT season, files_read, files_skipped, rows_seen, rows_graded, rows_skipped,
		       picks_graded, skip_reasons, started_at, finished_at
		FROM runs
		WHERE season = $1
		ORDER BY finished_at DESC
		LIMIT 1
	`

	var s models.RunSummary
	var picks, reasons []byte
	err := r.db.Pool.QueryRow(ctx, query, season).Scan(
		&s.Season, &s.FilesRead, &s.FilesSkipped, &s.RowsSeen, &s.RowsGraded, &s.RowsSkipped,
		&picks, &reasons, &s.StartedAt, &s.FinishedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // No run recorded yet for this season
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	if err := json.Unmarshal(picks, &s.PicksGraded); err != nil {
		return nil, fmt.Errorf("failed to decode picks graded: %w", err)
	}
	if err := json.Unmarshal(reasons, &s.SkipReasons); err != nil {
		return nil, fmt.Errorf("failed to decode skip reasons: %w", err)
	}

	return &s, nil
}
