// Package report writes the per-bucket metrics tables.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/finals"
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// Layout describes the output table of one bucket
type Layout struct {
	FileName   string
	TeamColumn string // empty when the bucket is not keyed by team
	HasSide    bool
}

// Layouts maps each bucket to its output table
var Layouts = map[models.Bucket]Layout{
	models.BucketTeamATS:     {FileName: "team_ats_by_picker.csv", TeamColumn: "team"},
	models.BucketTeamFadeATS: {FileName: "team_fade_ats_by_picker.csv", TeamColumn: "opponent"},
	models.BucketHomeAwayATS: {FileName: "home_away_ats_by_picker.csv", HasSide: true},
	models.BucketTotals:      {FileName: "totals_by_picker.csv", HasSide: true},
	models.BucketTeamTotals:  {FileName: "team_totals_by_picker.csv", TeamColumn: "team", HasSide: true},
}

// Header returns the column names of a bucket table
func (l Layout) Header() []string {
	header := []string{"season"}
	if l.TeamColumn != "" {
		header = append(header, l.TeamColumn)
	}
	header = append(header, "picker")
	if l.HasSide {
		header = append(header, "side")
	}
	return append(header, "wins", "losses", "pushes", "games", "win_pct")
}

// Record formats one bucket entry
func (l Layout) Record(row models.TallyRow) []string {
	record := []string{row.Season}
	if l.TeamColumn != "" {
		record = append(record, row.Team)
	}
	record = append(record, row.Participant)
	if l.HasSide {
		record = append(record, row.Side)
	}
	return append(record,
		strconv.Itoa(row.Tally.Wins),
		strconv.Itoa(row.Tally.Losses),
		strconv.Itoa(row.Tally.Pushes),
		strconv.Itoa(row.Tally.Games()),
		row.Tally.WinPct(),
	)
}

// Build turns tally rows into the five bucket tables, in bucket order.
// A bucket with no entries still yields a header-only table.
func Build(rows []models.TallyRow) []*finals.Table {
	byBucket := make(map[models.Bucket][]models.TallyRow, len(models.Buckets))
	for _, row := range rows {
		byBucket[row.Bucket] = append(byBucket[row.Bucket], row)
	}

	tables := make([]*finals.Table, 0, len(models.Buckets))
	for _, bucket := range models.Buckets {
		layout := Layouts[bucket]
		entries := byBucket[bucket]
		models.SortTallyRows(entries)

		table := &finals.Table{
			Name:   layout.FileName,
			Header: layout.Header(),
			Rows:   make([][]string, 0, len(entries)),
		}
		for _, row := range entries {
			table.Rows = append(table.Rows, layout.Record(row))
		}
		tables = append(tables, table)
	}
	return tables
}

// SeasonMetricsName is the file holding every final table of a season stacked
func SeasonMetricsName(season string) string {
	return season + "_metrics.csv"
}

// WriteAll writes each table into dir and returns the written paths
func WriteAll(dir string, tables []*finals.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path, err := WriteTable(dir, table)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteTable replaces dir/table.Name in full. The table is written to a
// temporary file first so readers never see a partial file.
func WriteTable(dir string, table *finals.Table) (string, error) {
	path := filepath.Join(dir, table.Name)

	tmp, err := os.CreateTemp(dir, "."+table.Name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", table.Name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Header); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s header: %w", table.Name, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", table.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", table.Name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("failed to chmod %s: %w", table.Name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return path, nil
}
