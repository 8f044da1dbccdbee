package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TallyRepository handles bucket tally database operations
type TallyRepository struct {
	db *Database
}

// ReplaceSeason swaps every stored tally of a season for rows in one transaction
func (r *TallyRepository) ReplaceSeason(ctx context.Context, season string, rows []models.TallyRow) error {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordDBQuery("replace", "tallies", status, time.Since(start).Seconds())
	}()

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		status = "error"
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tallies WHERE season = $1`, season); err != nil {
		status = "error"
		return fmt.Errorf("failed to clear tallies for season %s: %w", season, err)
	}

	query := `
		INSERT INTO tallies (
			season, bucket, team, participant, side, wins, losses, pushes, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (season, bucket, team, participant, side) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			pushes = EXCLUDED.pushes,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query,
			season, string(row.Bucket), row.Team, row.Participant, row.Side,
			row.Tally.Wins, row.Tally.Losses, row.Tally.Pushes,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			status = "error"
			return fmt.Errorf("failed to insert tally: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		status = "error"
		return fmt.Errorf("failed to close tally batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		status = "error"
		return fmt.Errorf("failed to commit tallies: %w", err)
	}

	log.Debug().
		Str("season", season).
		Int("rows", len(rows)).
		Msg("Tallies replaced")

	return nil
}

// ListBySeason returns a season's tallies for one bucket, in key order
func (r *TallyRepository) ListBySeason(ctx context.Context, season string, bucket models.Bucket) ([]models.TallyRow, error) {
	query := `
		SELECT season, bucket, team, participant, side, wins, losses, pushes, updated_at
		FROM tallies
		WHERE season = $1 AND bucket = $2
		ORDER BY team, participant, side
	`

	rows, err := r.db.Pool.Query(ctx, query, season, string(bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to list tallies: %w", err)
	}
	defer rows.Close()

	var tallies []models.TallyRow
	for rows.Next() {
		var t models.TallyRow
		var b string
		err := rows.Scan(
			&t.Season, &b, &t.Team, &t.Participant, &t.Side,
			&t.Tally.Wins, &t.Tally.Losses, &t.Tally.Pushes, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		t.Bucket = models.Bucket(b)
		tallies = append(tallies, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tallies: %w", err)
	}

	return tallies, nil
}
