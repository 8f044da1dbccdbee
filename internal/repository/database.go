package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Database holds the database connection pool and provides access to repositories
type Database struct {
	Pool *pgxpool.Pool

	// Repositories
	Tallies *TallyRepository
	Runs    *RunRepository
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

const schema = `
CREATE TABLE IF NOT EXISTS tallies (
	season      TEXT        NOT NULL,
	bucket      TEXT        NOT NULL,
	team        TEXT        NOT NULL DEFAULT '',
	participant TEXT        NOT NULL,
	side        TEXT        NOT NULL DEFAULT '',
	wins        INTEGER     NOT NULL DEFAULT 0,
	losses      INTEGER     NOT NULL DEFAULT 0,
	pushes      INTEGER     NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (season, bucket, team, participant, side)
);

CREATE TABLE IF NOT EXISTS runs (
	id           BIGSERIAL   PRIMARY KEY,
	season       TEXT        NOT NULL,
	files_read   INTEGER     NOT NULL,
	files_skipped INTEGER    NOT NULL,
	rows_seen    INTEGER     NOT NULL,
	rows_graded  INTEGER     NOT NULL,
	rows_skipped INTEGER     NOT NULL,
	picks_graded JSONB       NOT NULL DEFAULT '{}',
	skip_reasons JSONB       NOT NULL DEFAULT '{}',
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_season_finished_idx ON runs (season, finished_at DESC);
`

// NewDatabase creates a new database connection pool and initializes repositories
func NewDatabase(ctx context.Context, cfg Config) (*Database, error) {
	// Build connection string
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// A grading run holds one connection for its transaction
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Successfully connected to database")

	db := &Database{
		Pool: pool,
	}
	db.Tallies = &TallyRepository{db: db}
	db.Runs = &RunRepository{db: db}

	return db, nil
}

// Migrate creates the tables if they do not exist
func (db *Database) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Publish stores a finished run: the season's tallies are replaced and the
// run summary appended
func (db *Database) Publish(ctx context.Context, summary *models.RunSummary, rows []models.TallyRow) error {
	if err := db.Tallies.ReplaceSeason(ctx, summary.Season, rows); err != nil {
		return err
	}
	if _, err := db.Runs.Create(ctx, summary); err != nil {
		return err
	}
	return nil
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		log.Info().Msg("Database connection pool closed")
	}
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// PoolStats returns database pool statistics
func (db *Database) PoolStats() map[string]interface{} {
	stat := db.Pool.Stat()
	return map[string]interface{}{
		"total_conns":    stat.TotalConns(),
		"acquired_conns": stat.AcquiredConns(),
		"idle_conns":     stat.IdleConns(),
		"max_conns":      stat.MaxConns(),
	}
}
