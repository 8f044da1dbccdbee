package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []models.TallyRow {
	return []models.TallyRow{
		{Season: "2025", Bucket: models.BucketTeamATS, Team: "Jets", Participant: "Nikki", Tally: models.Tally{Wins: 1, Losses: 2}},
		{Season: "2025", Bucket: models.BucketTeamATS, Team: "Bills", Participant: "Mat", Tally: models.Tally{Wins: 7, Losses: 2, Pushes: 1}},
		{Season: "2025", Bucket: models.BucketTeamFadeATS, Team: "Bills", Participant: "Nikki", Tally: models.Tally{Wins: 2, Losses: 1}},
		{Season: "2025", Bucket: models.BucketHomeAwayATS, Participant: "Mat", Side: "Home", Tally: models.Tally{Wins: 1, Losses: 7}},
		{Season: "2025", Bucket: models.BucketHomeAwayATS, Participant: "Mat", Side: "Away", Tally: models.Tally{Pushes: 1}},
		{Season: "2025", Bucket: models.BucketTotals, Participant: "Nikki", Side: "Under", Tally: models.Tally{Wins: 3}},
		{Season: "2025", Bucket: models.BucketTeamTotals, Team: "Jets", Participant: "Nikki", Side: "Under", Tally: models.Tally{Wins: 3}},
		{Season: "2025", Bucket: models.BucketTeamTotals, Team: "Bills", Participant: "Nikki", Side: "Under", Tally: models.Tally{Wins: 3}},
	}
}

func TestLayoutHeaders(t *testing.T) {
	tests := []struct {
		bucket models.Bucket
		file   string
		header string
	}{
		{models.BucketTeamATS, "team_ats_by_picker.csv", "season,team,picker,wins,losses,pushes,games,win_pct"},
		{models.BucketTeamFadeATS, "team_fade_ats_by_picker.csv", "season,opponent,picker,wins,losses,pushes,games,win_pct"},
		{models.BucketHomeAwayATS, "home_away_ats_by_picker.csv", "season,picker,side,wins,losses,pushes,games,win_pct"},
		{models.BucketTotals, "totals_by_picker.csv", "season,picker,side,wins,losses,pushes,games,win_pct"},
		{models.BucketTeamTotals, "team_totals_by_picker.csv", "season,team,picker,side,wins,losses,pushes,games,win_pct"},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			layout, ok := Layouts[tt.bucket]
			require.True(t, ok)
			assert.Equal(t, tt.file, layout.FileName)
			assert.Equal(t, tt.header, strings.Join(layout.Header(), ","))
		})
	}
}

func TestBuild(t *testing.T) {
	tables := Build(sampleRows())
	require.Len(t, tables, len(models.Buckets))

	want := map[string][][]string{
		"team_ats_by_picker.csv": {
			{"2025", "Bills", "Mat", "7", "2", "1", "10", "70.0"},
			{"2025", "Jets", "Nikki", "1", "2", "0", "3", "33.3"},
		},
		"team_fade_ats_by_picker.csv": {
			{"2025", "Bills", "Nikki", "2", "1", "0", "3", "66.7"},
		},
		"home_away_ats_by_picker.csv": {
			{"2025", "Mat", "Away", "0", "0", "1", "1", "0.0"},
			{"2025", "Mat", "Home", "1", "7", "0", "8", "12.5"},
		},
		"totals_by_picker.csv": {
			{"2025", "Nikki", "Under", "3", "0", "0", "3", "100.0"},
		},
		"team_totals_by_picker.csv": {
			{"2025", "Bills", "Nikki", "Under", "3", "0", "0", "3", "100.0"},
			{"2025", "Jets", "Nikki", "Under", "3", "0", "0", "3", "100.0"},
		},
	}

	for _, table := range tables {
		if diff := cmp.Diff(want[table.Name], table.Rows); diff != "" {
			t.Errorf("%s rows mismatch (-want +got):\n%s", table.Name, diff)
		}
	}
}

func TestBuild_EmptyBucketsKeepHeaders(t *testing.T) {
	tables := Build(nil)
	require.Len(t, tables, 5)
	for _, table := range tables {
		assert.NotEmpty(t, table.Header, table.Name)
		assert.Empty(t, table.Rows, table.Name)
	}
}

func TestWriteAll_Deterministic(t *testing.T) {
	dir := t.TempDir()
	rows := sampleRows()

	paths, err := WriteAll(dir, Build(rows))
	require.NoError(t, err)
	require.Len(t, paths, 5)
	first := readAll(t, paths)

	// same rows in a different order must give byte-identical files
	reversed := make([]models.TallyRow, len(rows))
	for i, row := range rows {
		reversed[len(rows)-1-i] = row
	}
	_, err = WriteAll(dir, Build(reversed))
	require.NoError(t, err)
	second := readAll(t, paths)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("output changed between runs (-first +second):\n%s", diff)
	}

	assert.Equal(t,
		"season,team,picker,wins,losses,pushes,games,win_pct\n2025,Bills,Mat,7,2,1,10,70.0\n2025,Jets,Nikki,1,2,0,3,33.3\n",
		string(first[filepath.Join(dir, "team_ats_by_picker.csv")]),
	)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "temporary files must not be left behind")
}

func TestWriteTable_Overwrites(t *testing.T) {
	dir := t.TempDir()
	table := &finals.Table{Name: "totals_by_picker.csv", Header: []string{"season"}, Rows: [][]string{{"2024"}, {"2024"}}}
	_, err := WriteTable(dir, table)
	require.NoError(t, err)

	table.Rows = [][]string{{"2025"}}
	path, err := WriteTable(dir, table)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "season\n2025\n", string(data))
}

func TestWriteTable_QuotesTeamNames(t *testing.T) {
	dir := t.TempDir()
	table := &finals.Table{Name: "x.csv", Header: []string{"team"}, Rows: [][]string{{"Washington, DC"}}}
	path, err := WriteTable(dir, table)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "team\n\"Washington, DC\"\n", string(data))
}

func readAll(t *testing.T, paths []string) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out[p] = data
	}
	return out
}

func TestWriteSummary(t *testing.T) {
	s := &models.RunSummary{
		Season:      "2025",
		FilesRead:   2,
		RowsSeen:    10,
		RowsGraded:  8,
		RowsSkipped: 2,
		PicksGraded: map[string]int{"spread": 15, "total": 14},
		SkipReasons: map[string]int{"missing score(s)": 2, "total: no pick": 2, "spread: grade failed": 1},
		Outputs:     []string{"docs/data/metrics/team_ats_by_picker.csv"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	want := `Season: 2025
Files: 2 read, 0 skipped
Rows seen: 10
Rows graded: 8
Rows skipped: 2
Picks graded: spread=15 total=14
Skip reasons:
  missing score(s): 2
  total: no pick: 2
  spread: grade failed: 1
Wrote: docs/data/metrics/team_ats_by_picker.csv
`
	assert.Equal(t, want, buf.String())
}

func TestWriteSummary_NoSkips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, &models.RunSummary{Season: "2024"}))
	assert.Contains(t, buf.String(), "Skip reasons: none\n")
	assert.Contains(t, buf.String(), "Picks graded: spread=0 total=0\n")
}
