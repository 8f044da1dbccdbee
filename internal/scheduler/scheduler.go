package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/engine"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner grades a season. *engine.Engine satisfies it.
type Runner interface {
	ResolveSeason(explicit, override string) (string, error)
	Run(ctx context.Context, season string) (*engine.Result, error)
}

// Scheduler re-grades the current season on a cron schedule.
// The season is resolved again on every tick so a new season's first final
// table is picked up without a restart.
type Scheduler struct {
	schedule string
	season   string
	runner   Runner
	cron     *cron.Cron

	mu sync.Mutex // one run at a time
}

// NewScheduler creates a new scheduler instance. season pins the season;
// leave it empty to follow the newest final table.
func NewScheduler(schedule, season string, runner Runner) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		season:   season,
		runner:   runner,
		cron:     cron.New(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled run failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule refresh %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.schedule).
		Msg("Season refresh scheduled")

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// RunOnce resolves the season and grades it. A tick that finds no final
// tables yet is not an error; the empty season string is returned.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	season, err := s.runner.ResolveSeason("", s.season)
	if err != nil {
		if finals.IsConfigError(err) {
			log.Warn().Err(err).Msg("No season to grade yet")
			return "", nil
		}
		metrics.RecordError("scheduler", "resolve")
		return "", err
	}

	if _, err := s.runner.Run(ctx, season); err != nil {
		metrics.RecordError("scheduler", "run")
		return season, fmt.Errorf("season %s: %w", season, err)
	}

	log.Info().
		Str("season", season).
		Dur("duration", time.Since(start)).
		Msg("Scheduled run complete")

	return season, nil
}
