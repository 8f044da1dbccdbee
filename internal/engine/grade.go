package engine

import (
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/aggregator"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/columns"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/grader"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/rs/zerolog/log"
)

type pickColumn struct {
	participant string
	market      models.Market
	column      columns.Column
}

// GradeTable grades every row of one weekly table into a fresh aggregator.
// It touches no shared state, so tables may be graded concurrently.
func GradeTable(table *finals.Table, participants []string) *aggregator.Aggregator {
	agg := aggregator.New()
	agg.Stats.FilesRead++

	r := columns.NewResolver(table.Header)
	if missing := r.Missing(columns.CoreFields...); len(missing) > 0 {
		agg.Stats.FilesSkipped++
		agg.Stats.SkipRows(aggregator.MissingColumnsReason(table.Name), len(table.Rows))
		log.Warn().
			Str("file", table.Name).
			Interface("missing", missing).
			Int("rows", len(table.Rows)).
			Msg("Skipping table with missing core columns")
		return agg
	}

	gameID, _ := r.Resolve(columns.GameID)
	homeTeam, _ := r.Resolve(columns.HomeTeam)
	awayTeam, _ := r.Resolve(columns.AwayTeam)
	homeScore, _ := r.Resolve(columns.HomeScore)
	awayScore, _ := r.Resolve(columns.AwayScore)

	// A market without a line column cannot be graded for anyone in this table.
	lines := make(map[models.Market]columns.Column)
	var picks []pickColumn
	for _, m := range models.Markets {
		line, ok := r.Resolve(columns.LineField[m])
		if !ok {
			log.Debug().Str("file", table.Name).Stringer("market", m).Msg("No line column")
			continue
		}
		lines[m] = line
		for _, p := range participants {
			if col, ok := r.Pick(p, m); ok {
				picks = append(picks, pickColumn{participant: p, market: m, column: col})
			}
		}
	}

	seen := make(map[string]bool, len(table.Rows))
	for _, row := range table.Rows {
		id := table.Cell(row, gameID.Index)
		if id == "" {
			agg.Stats.SkipRow(aggregator.ReasonMissingGameID)
			continue
		}
		if seen[id] {
			agg.Stats.SkipRow(aggregator.ReasonDuplicateGameID)
			continue
		}
		seen[id] = true

		hs, as := table.Cell(row, homeScore.Index), table.Cell(row, awayScore.Index)
		if hs == "" || as == "" {
			agg.Stats.SkipRow(aggregator.ReasonMissingScores)
			continue
		}

		game := models.GameRecord{
			GameID:    id,
			HomeTeam:  table.Cell(row, homeTeam.Index),
			AwayTeam:  table.Cell(row, awayTeam.Index),
			HomeScore: models.ParseScore(hs),
			AwayScore: models.ParseScore(as),
		}
		if !game.HomeScore.Valid || !game.AwayScore.Valid {
			agg.Stats.SkipRow(aggregator.ReasonNonNumericScores)
			continue
		}
		if col, ok := lines[models.MarketSpread]; ok {
			game.SpreadHome = models.ParseNumber(table.Cell(row, col.Index))
		}
		if col, ok := lines[models.MarketTotal]; ok {
			game.TotalLine = models.ParseNumber(table.Cell(row, col.Index))
		}

		graded := false
		for _, pc := range picks {
			side := models.ParseSide(table.Cell(row, pc.column.Index))
			if side == models.SideNone {
				agg.Stats.SkipPick(aggregator.NoPickReason(pc.market))
				continue
			}
			pick := models.Pick{Participant: pc.participant, Market: pc.market, Side: side}
			if agg.Add(&game, pick, grader.Grade(&game, pick)) {
				graded = true
			}
		}

		if graded {
			agg.Stats.GradeRow()
		} else {
			agg.Stats.SkipRow(aggregator.ReasonNoGradeablePicks)
		}
	}

	log.Debug().
		Str("file", table.Name).
		Int("rows", len(table.Rows)).
		Int("graded", agg.Stats.RowsGraded).
		Int("skipped", agg.Stats.RowsSkipped).
		Msg("Graded table")

	return agg
}
