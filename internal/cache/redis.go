// Package cache keeps the latest run summary of each season in Redis so the
// site can read it without touching the metrics tables.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores run summaries
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// SummaryKey is the key holding a season's latest summary
func SummaryKey(season string) string {
	return "pickstats:summary:" + season
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(ctx context.Context, cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// Publish stores the summary under SummaryKey. Tally rows stay in the
// metrics tables.
func (c *RedisCache) Publish(ctx context.Context, summary *models.RunSummary, _ []models.TallyRow) error {
	start := time.Now()
	defer func() {
		metrics.RecordCacheOperation("set", time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, SummaryKey(summary.Season), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary for season %s: %w", summary.Season, err)
	}

	log.Debug().
		Str("season", summary.Season).
		Dur("ttl", c.ttl).
		Msg("Summary cached")

	return nil
}

// LatestSummary returns the cached summary of a season, or nil on a miss
func (c *RedisCache) LatestSummary(ctx context.Context, season string) (*models.RunSummary, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCacheOperation("get", time.Since(start).Seconds())
	}()

	payload, err := c.client.Get(ctx, SummaryKey(season)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var s models.RunSummary
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &s, nil
}

// Close closes the client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
