// Package engine runs one season through load, grade, merge and report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/aggregator"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/report"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Publisher receives the result of every successful run
type Publisher interface {
	Publish(ctx context.Context, summary *models.RunSummary, rows []models.TallyRow) error
}

// Options configures a run
type Options struct {
	FinalDir     string
	MetricsDir   string
	Participants []string
	Workers      int
	Chart        bool
}

// Result is everything a run produced
type Result struct {
	Summary    *models.RunSummary
	Rows       []models.TallyRow
	Aggregator *aggregator.Aggregator
}

// Engine grades seasons
type Engine struct {
	opts       Options
	factory    finals.ReaderFactory
	publishers []Publisher
}

// New creates an engine. Publishers are called in order after outputs are written.
func New(opts Options, publishers ...Publisher) *Engine {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Engine{
		opts:       opts,
		factory:    finals.NewFactory(),
		publishers: publishers,
	}
}

// ResolveSeason applies explicit > override > newest final table
func (e *Engine) ResolveSeason(explicit, override string) (string, error) {
	return finals.ResolveSeason(explicit, override, e.opts.FinalDir)
}

// Run grades every weekly table of a season and rewrites the metrics tables.
// Configuration errors are returned before anything is written.
func (e *Engine) Run(ctx context.Context, season string) (*Result, error) {
	start := time.Now()

	result, err := e.run(ctx, season, start)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordRun(season, status, time.Since(start).Seconds())
	return result, err
}

func (e *Engine) run(ctx context.Context, season string, start time.Time) (*Result, error) {
	files, err := finals.SeasonFiles(e.opts.FinalDir, season)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("season", season).
		Int("files", len(files)).
		Int("workers", e.opts.Workers).
		Msg("Grading season")

	tables := make([]*finals.Table, len(files))
	parts := make([]*aggregator.Aggregator, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := finals.Load(f.Path, e.factory)
			if err != nil {
				log.Warn().
					Err(err).
					Str("file", f.Name()).
					Msg("Skipping unreadable table")
				parts[i] = aggregator.New()
				parts[i].Stats.SkipFile(aggregator.UnreadableTableReason(f.Name()))
				return nil
			}
			tables[i] = table
			parts[i] = GradeTable(table, e.opts.Participants)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := aggregator.New()
	for _, part := range parts {
		agg.Merge(part)
	}

	rows := agg.Rows(season)
	outputs := report.Build(rows)
	stacked := finals.Stack(tables)
	stacked.Name = report.SeasonMetricsName(season)
	outputs = append(outputs, stacked)

	paths, err := report.WriteAll(e.opts.MetricsDir, outputs)
	if err != nil {
		return nil, fmt.Errorf("failed to write reports: %w", err)
	}

	if e.opts.Chart {
		path, err := report.WriteChart(e.opts.MetricsDir, season, rows)
		switch {
		case errors.Is(err, report.ErrNoChartData):
			log.Warn().Str("season", season).Msg("Nothing to chart")
		case err != nil:
			return nil, err
		default:
			paths = append(paths, path)
		}
	}

	summary := agg.Stats.Summary(season)
	summary.Outputs = paths
	summary.StartedAt = start
	summary.FinishedAt = time.Now()
	metrics.RecordSummary(summary)

	log.Info().
		Str("season", season).
		Int("rows_seen", summary.RowsSeen).
		Int("rows_graded", summary.RowsGraded).
		Int("rows_skipped", summary.RowsSkipped).
		Dur("elapsed", summary.FinishedAt.Sub(start)).
		Msg("Season graded")

	e.publish(ctx, summary, rows)

	return &Result{Summary: summary, Rows: rows, Aggregator: agg}, nil
}

// publish hands the run to every sink. Sink failures are logged, not returned.
func (e *Engine) publish(ctx context.Context, summary *models.RunSummary, rows []models.TallyRow) {
	for _, p := range e.publishers {
		sink := fmt.Sprintf("%T", p)
		if err := p.Publish(ctx, summary, rows); err != nil {
			metrics.RecordPublishError(sink)
			log.Error().Err(err).Str("sink", sink).Msg("Failed to publish run")
			continue
		}
		log.Debug().Str("sink", sink).Msg("Run published")
	}
}
