package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoChartData is returned when there are no graded picks to plot
var ErrNoChartData = errors.New("no graded picks to chart")

var (
	atsColor    = drawing.ColorFromHex("1f77b4")
	totalsColor = drawing.ColorFromHex("ff7f0e")
)

// ChartName is the PNG written next to the metrics tables
func ChartName(season string) string {
	return season + "_win_pct.png"
}

// RenderChart draws ATS and totals win percentage per picker as a PNG bar chart
func RenderChart(w io.Writer, season string, rows []models.TallyRow) error {
	ats := make(map[string]models.Tally)
	totals := make(map[string]models.Tally)
	for _, row := range rows {
		switch row.Bucket {
		case models.BucketHomeAwayATS:
			ats[row.Participant] = ats[row.Participant].Add(row.Tally)
		case models.BucketTotals:
			totals[row.Participant] = totals[row.Participant].Add(row.Tally)
		}
	}

	participants := make([]string, 0, len(ats)+len(totals))
	seen := make(map[string]bool)
	for _, m := range []map[string]models.Tally{ats, totals} {
		for p := range m {
			if !seen[p] {
				seen[p] = true
				participants = append(participants, p)
			}
		}
	}
	if len(participants) == 0 {
		return ErrNoChartData
	}
	sort.Strings(participants)

	var bars []chart.Value
	for _, p := range participants {
		if t, ok := ats[p]; ok {
			bars = append(bars, chart.Value{
				Label: p + " ATS",
				Value: float64(t.WinPctTenths()) / 10,
				Style: chart.Style{FillColor: atsColor, StrokeColor: atsColor},
			})
		}
		if t, ok := totals[p]; ok {
			bars = append(bars, chart.Value{
				Label: p + " O/U",
				Value: float64(t.WinPctTenths()) / 10,
				Style: chart.Style{FillColor: totalsColor, StrokeColor: totalsColor},
			})
		}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s win %%", season),
		Width:    max(400, 160*len(bars)),
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

// WriteChart renders the chart into dir and returns its path
func WriteChart(dir, season string, rows []models.TallyRow) (string, error) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, season, rows); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ChartName(season))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return path, nil
}
