// Package sinks opens the optional publishers a run reports to.
package sinks

import (
	"context"
	"strconv"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/cache"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/config"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/engine"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/repository"

	"github.com/rs/zerolog/log"
)

// Sinks holds the publishers that connected
type Sinks struct {
	DB    *repository.Database
	Cache *cache.RedisCache
}

// Open connects every enabled sink. A sink that cannot connect is logged
// and left out; the metrics tables are still written without it.
func Open(ctx context.Context, cfg *config.Config) *Sinks {
	s := &Sinks{}

	if cfg.DatabaseEnabled {
		db, err := repository.NewDatabase(ctx, repository.Config{
			Host:     cfg.DatabaseHost,
			Port:     strconv.Itoa(cfg.DatabasePort),
			User:     cfg.DatabaseUser,
			Password: cfg.DatabasePassword,
			Database: cfg.DatabaseName,
			SSLMode:  cfg.DatabaseSSLMode,
		})
		switch {
		case err != nil:
			metrics.RecordError("sinks", "database_connect")
			log.Warn().Err(err).Msg("Failed to connect to database - continuing without it")
		default:
			if err := db.Migrate(ctx); err != nil {
				metrics.RecordError("sinks", "database_migrate")
				log.Warn().Err(err).Msg("Failed to migrate database - continuing without it")
				db.Close()
			} else {
				s.DB = db
			}
		}
	}

	if cfg.RedisEnabled {
		c, err := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			metrics.RecordError("sinks", "redis_connect")
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			s.Cache = c
			log.Info().Msg("Redis cache connected")
		}
	}

	return s
}

// Publishers returns the connected sinks in publish order
func (s *Sinks) Publishers() []engine.Publisher {
	var out []engine.Publisher
	if s.DB != nil {
		out = append(out, s.DB)
	}
	if s.Cache != nil {
		out = append(out, s.Cache)
	}
	return out
}

// Close closes every connected sink
func (s *Sinks) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
