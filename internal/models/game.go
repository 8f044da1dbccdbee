package models

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// GameRecord is one row of a weekly final table
type GameRecord struct {
	GameID   string
	HomeTeam string
	AwayTeam string

	// Scores are invalid until the game has concluded
	HomeScore sql.NullFloat64
	AwayScore sql.NullFloat64

	// Lines, invalid when the table has no line column or the cell is blank
	SpreadHome sql.NullFloat64
	TotalLine  sql.NullFloat64
}

// TeamFor returns the team a side of the spread refers to
func (g *GameRecord) TeamFor(side Side) string {
	if side == SideHome {
		return g.HomeTeam
	}
	return g.AwayTeam
}

// OpponentFor returns the team being faded by a spread pick
func (g *GameRecord) OpponentFor(side Side) string {
	if side == SideHome {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// Pick is one participant's selection for one game and market
type Pick struct {
	Participant string
	Market      Market
	Side        Side
}

// ParseNumber converts a raw cell to a nullable float.
// Blank, non-numeric and non-finite values are invalid.
func ParseNumber(raw string) sql.NullFloat64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// ParseScore is ParseNumber restricted to non-negative whole numbers.
// "24.0" is accepted since spreadsheet exports write scores that way.
func ParseScore(raw string) sql.NullFloat64 {
	n := ParseNumber(raw)
	if !n.Valid || n.Float64 < 0 || n.Float64 != math.Trunc(n.Float64) {
		return sql.NullFloat64{}
	}
	return n
}
