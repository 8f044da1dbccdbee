package columns

import (
	"testing"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_SpreadAliasPriority(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{"canonical", []string{"game_id", "spread_home"}, "spread_home"},
		{"mixed case", []string{"Home_Spread"}, "Home_Spread"},
		{"bare spread", []string{"SPREAD"}, "SPREAD"},
		{"first alias wins over later", []string{"spread", "home_spread", "spread_home"}, "spread_home"},
		{"second alias beats third", []string{"spread", "home_spread"}, "home_spread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := NewResolver(tt.header).Resolve(SpreadHome)
			require.True(t, ok)
			assert.Equal(t, tt.want, col.Name)
			assert.Equal(t, tt.header[col.Index], col.Name)
		})
	}
}

func TestResolver_TotalAliases(t *testing.T) {
	for _, header := range []string{"total", "Over_Under", "OU", "total_points"} {
		col, ok := NewResolver([]string{"game_id", header}).Resolve(TotalLine)
		require.True(t, ok, header)
		assert.Equal(t, 1, col.Index)
	}
}

func TestResolver_Absent(t *testing.T) {
	r := NewResolver([]string{"game_id", "home_team", "away_team"})

	_, ok := r.Resolve(SpreadHome)
	assert.False(t, ok)
	_, ok = r.Pick("Mat", models.MarketTotal)
	assert.False(t, ok)
	assert.Equal(t, []Field{HomeScore, AwayScore}, r.Missing(CoreFields...))
}

func TestResolver_HeaderCleanup(t *testing.T) {
	r := NewResolver([]string{"\ufeffgame_id", " Home_Team ", "", "home_team"})

	col, ok := r.Resolve(GameID)
	require.True(t, ok)
	assert.Equal(t, 0, col.Index)

	col, ok = r.Resolve(HomeTeam)
	require.True(t, ok)
	assert.Equal(t, 1, col.Index, "leftmost duplicate wins")
}

func TestResolver_PickColumns(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		participant string
		market      models.Market
		want        string
	}{
		{"spread lower", []string{"mat_spread"}, "Mat", models.MarketSpread, "mat_spread"},
		{"spread original case", []string{"Mat_spread"}, "Mat", models.MarketSpread, "Mat_spread"},
		{"spread pick", []string{"nikki_spread_pick"}, "Nikki", models.MarketSpread, "nikki_spread_pick"},
		{"ats", []string{"Nikki_ATS"}, "Nikki", models.MarketSpread, "Nikki_ATS"},
		{"ats lower", []string{"nikki_ats"}, "Nikki", models.MarketSpread, "nikki_ats"},
		{"total", []string{"mat_total"}, "Mat", models.MarketTotal, "mat_total"},
		{"total pick", []string{"MAT_TOTAL_PICK"}, "Mat", models.MarketTotal, "MAT_TOTAL_PICK"},
		{"ou", []string{"mat_ou"}, "Mat", models.MarketTotal, "mat_ou"},
		{"suffix order", []string{"mat_OU", "mat_total"}, "Mat", models.MarketTotal, "mat_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := NewResolver(tt.header).Pick(tt.participant, tt.market)
			require.True(t, ok)
			assert.Equal(t, tt.want, col.Name)
		})
	}
}

func TestResolver_PickDoesNotCrossMarkets(t *testing.T) {
	r := NewResolver([]string{"mat_spread", "nikki_total"})

	_, ok := r.Pick("Mat", models.MarketTotal)
	assert.False(t, ok)
	_, ok = r.Pick("Nikki", models.MarketSpread)
	assert.False(t, ok)
}

func TestPickAliases(t *testing.T) {
	assert.Equal(t,
		[]string{"Mat_spread", "Mat_spread_pick", "Mat_ATS"},
		PickAliases(" Mat ", models.MarketSpread),
	)
}
