package main

import (
	"fmt"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/config"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/engine"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/metrics"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/report"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/sinks"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "pickstats",
		Usage:     "grade weekly picks and rewrite the season metrics tables",
		ArgsUsage: "[season]",
		Flags:     runFlags(),
		Action: func(c *cli.Context) error {
			return aggregate(c, false)
		},
		Commands: []*cli.Command{
			{
				Name:      "aggregate",
				Usage:     "grade a season (the default command)",
				ArgsUsage: "[season]",
				Flags:     runFlags(),
				Action: func(c *cli.Context) error {
					return aggregate(c, false)
				},
			},
			{
				Name:      "chart",
				Usage:     "grade a season and render its win-pct chart",
				ArgsUsage: "[season]",
				Flags:     runFlags(),
				Action: func(c *cli.Context) error {
					return aggregate(c, true)
				},
			},
			{
				Name:  "seasons",
				Usage: "list seasons that have final tables",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "final-dir", Usage: "directory of weekly final tables"},
				},
				Action: listSeasons,
			},
		},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "final-dir", Usage: "directory of weekly final tables"},
		&cli.StringFlag{Name: "metrics-dir", Usage: "directory the metrics tables are written to"},
		&cli.StringFlag{Name: "pickers", Usage: "comma separated picker names"},
		&cli.IntFlag{Name: "workers", Usage: "files graded in parallel"},
		&cli.BoolFlag{Name: "chart", Usage: "render the win-pct chart"},
	}
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cli.Exit(err.Error(), config.ExitConfig)
	}

	if c.IsSet("final-dir") {
		cfg.FinalDir = c.String("final-dir")
	}
	if c.IsSet("metrics-dir") {
		cfg.MetricsDir = c.String("metrics-dir")
	}
	if c.IsSet("pickers") {
		cfg.Pickers = config.ParsePickers(c.String("pickers"))
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("chart") {
		cfg.Chart = c.Bool("chart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(fmt.Sprintf("invalid configuration: %v", err), config.ExitConfig)
	}
	return cfg, nil
}

func aggregate(c *cli.Context, chart bool) error {
	if c.NArg() > 1 {
		return cli.Exit("expected at most one season argument", config.ExitConfig)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if chart {
		cfg.Chart = true
	}

	ctx := c.Context
	out := sinks.Open(ctx, cfg)
	defer out.Close()

	eng := engine.New(engine.Options{
		FinalDir:     cfg.FinalDir,
		MetricsDir:   cfg.MetricsDir,
		Participants: cfg.Pickers,
		Workers:      cfg.Workers,
		Chart:        cfg.Chart,
	}, out.Publishers()...)

	season, err := eng.ResolveSeason(c.Args().First(), cfg.Season)
	if err != nil {
		return exitError(err)
	}

	result, err := eng.Run(ctx, season)
	if err != nil {
		return exitError(err)
	}

	if err := report.WriteSummary(c.App.Writer, result.Summary); err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsTextfile).Msg("Failed to write metrics textfile")
		}
	}

	return nil
}

func listSeasons(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	seasons, err := finals.Seasons(cfg.FinalDir)
	if err != nil {
		return err
	}
	if len(seasons) == 0 {
		return cli.Exit(fmt.Sprintf("%v in %s", finals.ErrNoSeason, cfg.FinalDir), config.ExitConfig)
	}

	for _, season := range seasons {
		files, err := finals.SeasonFiles(cfg.FinalDir, season)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s\t%d weeks\n", season, len(files))
	}
	return nil
}

// exitError maps configuration errors to exit status 78; everything else
// exits 1
func exitError(err error) error {
	if finals.IsConfigError(err) {
		return cli.Exit(err.Error(), config.ExitConfig)
	}
	return cli.Exit(err.Error(), 1)
}
