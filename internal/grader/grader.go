// Package grader turns a pick and a final score into a win, loss or push.
// Grading is total: bad input yields models.Ungradeable, never an error or a loss.
package grader

import (
	"database/sql"
	"math"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// Epsilon is the tolerance for treating a margin as exactly zero
const Epsilon = 1e-9

// GradeSpread grades a Home or Away pick against the home spread.
// The home side covers when (home + spread) - away is positive.
func GradeSpread(homeScore, awayScore, spreadHome sql.NullFloat64, side models.Side) models.Outcome {
	if !homeScore.Valid || !awayScore.Valid || !spreadHome.Valid {
		return models.Ungradeable
	}
	if side != models.SideHome && side != models.SideAway {
		return models.Ungradeable
	}

	margin := (homeScore.Float64 + spreadHome.Float64) - awayScore.Float64
	if math.Abs(margin) < Epsilon {
		return models.Push
	}

	homeCovers := margin > 0
	if homeCovers == (side == models.SideHome) {
		return models.Win
	}
	return models.Loss
}

// GradeTotal grades an Over or Under pick against the combined score
func GradeTotal(homeScore, awayScore, totalLine sql.NullFloat64, side models.Side) models.Outcome {
	if !homeScore.Valid || !awayScore.Valid || !totalLine.Valid {
		return models.Ungradeable
	}
	if side != models.SideOver && side != models.SideUnder {
		return models.Ungradeable
	}

	diff := homeScore.Float64 + awayScore.Float64 - totalLine.Float64
	if math.Abs(diff) < Epsilon {
		return models.Push
	}

	isOver := diff > 0
	if isOver == (side == models.SideOver) {
		return models.Win
	}
	return models.Loss
}

// Grade dispatches on the pick's market
func Grade(game *models.GameRecord, pick models.Pick) models.Outcome {
	switch pick.Market {
	case models.MarketSpread:
		return GradeSpread(game.HomeScore, game.AwayScore, game.SpreadHome, pick.Side)
	case models.MarketTotal:
		return GradeTotal(game.HomeScore, game.AwayScore, game.TotalLine, pick.Side)
	default:
		return models.Ungradeable
	}
}
