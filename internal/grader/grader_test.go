package grader

import (
	"database/sql"
	"testing"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
	"github.com/stretchr/testify/assert"
)

func num(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

var missing = sql.NullFloat64{}

func TestGradeSpread(t *testing.T) {
	tests := []struct {
		name             string
		home, away, line sql.NullFloat64
		side             models.Side
		want             models.Outcome
	}{
		{"favorite covers, home pick", num(24), num(20), num(-3), models.SideHome, models.Win},
		{"favorite covers, away pick", num(24), num(20), num(-3), models.SideAway, models.Loss},
		{"favorite fails, home pick", num(21), num(20), num(-3), models.SideHome, models.Loss},
		{"favorite fails, away pick", num(21), num(20), num(-3), models.SideAway, models.Win},
		{"underdog home covers", num(17), num(20), num(6.5), models.SideHome, models.Win},
		{"push home", num(20), num(17), num(-3), models.SideHome, models.Push},
		{"push away", num(20), num(17), num(-3), models.SideAway, models.Push},
		{"push within epsilon", num(20.0000000001), num(17), num(-3), models.SideAway, models.Push},
		{"pick'em", num(10), num(10), num(0), models.SideHome, models.Push},
		{"missing home score", missing, num(17), num(-3), models.SideHome, models.Ungradeable},
		{"missing away score", num(20), missing, num(-3), models.SideAway, models.Ungradeable},
		{"missing line", num(20), num(17), missing, models.SideHome, models.Ungradeable},
		{"no side", num(24), num(20), num(-3), models.SideNone, models.Ungradeable},
		{"total side on spread", num(24), num(20), num(-3), models.SideOver, models.Ungradeable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeSpread(tt.home, tt.away, tt.line, tt.side))
		})
	}
}

func TestGradeTotal(t *testing.T) {
	tests := []struct {
		name             string
		home, away, line sql.NullFloat64
		side             models.Side
		want             models.Outcome
	}{
		{"over hits", num(24), num(20), num(41.5), models.SideOver, models.Win},
		{"under misses", num(24), num(20), num(41.5), models.SideUnder, models.Loss},
		{"under hits", num(10), num(13), num(41.5), models.SideUnder, models.Win},
		{"over misses", num(10), num(13), num(41.5), models.SideOver, models.Loss},
		{"push over", num(20), num(21), num(41), models.SideOver, models.Push},
		{"push under", num(20), num(21), num(41), models.SideUnder, models.Push},
		{"missing line", num(20), num(21), missing, models.SideOver, models.Ungradeable},
		{"missing score", missing, num(21), num(41), models.SideUnder, models.Ungradeable},
		{"spread side on total", num(20), num(21), num(41), models.SideHome, models.Ungradeable},
		{"no side", num(20), num(21), num(41), models.SideNone, models.Ungradeable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeTotal(tt.home, tt.away, tt.line, tt.side))
		})
	}
}

func TestGradePushSymmetry(t *testing.T) {
	for _, spread := range []float64{-3, -7, 0, 3.5, 10} {
		away := 17.0
		home := away - spread
		assert.Equal(t, models.Push, GradeSpread(num(home), num(away), num(spread), models.SideHome))
		assert.Equal(t, models.Push, GradeSpread(num(home), num(away), num(spread), models.SideAway))
	}
}

func TestGradeOppositeSidesDisagree(t *testing.T) {
	home := GradeSpread(num(31), num(14), num(-10.5), models.SideHome)
	away := GradeSpread(num(31), num(14), num(-10.5), models.SideAway)
	assert.Equal(t, home.Invert(), away)
}

func TestGrade(t *testing.T) {
	game := &models.GameRecord{
		GameID:     "g1",
		HomeScore:  num(24),
		AwayScore:  num(20),
		SpreadHome: num(-3),
		TotalLine:  num(41.5),
	}

	assert.Equal(t, models.Win, Grade(game, models.Pick{Participant: "Mat", Market: models.MarketSpread, Side: models.SideHome}))
	assert.Equal(t, models.Win, Grade(game, models.Pick{Participant: "Mat", Market: models.MarketTotal, Side: models.SideOver}))
	assert.Equal(t, models.Ungradeable, Grade(game, models.Pick{Participant: "Mat", Side: models.SideOver}))
}
