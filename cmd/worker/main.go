package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/config"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/engine"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/scheduler"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/sinks"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	setupLogger()

	log.Info().Msg("Starting pick stats worker")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Str("final_dir", cfg.FinalDir).
		Str("metrics_dir", cfg.MetricsDir).
		Strs("pickers", cfg.Pickers).
		Msg("Configuration loaded")

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	out := sinks.Open(ctx, cfg)
	defer out.Close()

	eng := engine.New(engine.Options{
		FinalDir:     cfg.FinalDir,
		MetricsDir:   cfg.MetricsDir,
		Participants: cfg.Pickers,
		Workers:      cfg.Workers,
		Chart:        cfg.Chart,
	}, out.Publishers()...)

	// Start metrics HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           newMux(out),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Int("port", cfg.MetricsPort).Msg("Starting metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	sched := scheduler.NewScheduler(cfg.RefreshCron, cfg.Season, eng)
	if err := sched.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to start scheduler")
		os.Exit(config.ExitConfig)
	}

	if cfg.RunOnStart {
		log.Info().Msg("Running initial aggregation...")
		if season, err := sched.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("Initial aggregation failed, continuing anyway...")
		} else if season != "" {
			log.Info().Str("season", season).Msg("Initial aggregation completed successfully")
		}
	}

	// Keep running until context is cancelled
	<-ctx.Done()

	// Graceful shutdown
	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Metrics server shutdown failed")
	}

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}
