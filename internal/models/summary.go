package models

import (
	"sort"
	"time"
)

// RunSummary describes one aggregation run for a season
type RunSummary struct {
	Season       string         `json:"season"`
	FilesRead    int            `json:"files_read"`
	FilesSkipped int            `json:"files_skipped"`
	RowsSeen     int            `json:"rows_seen"`
	RowsGraded   int            `json:"rows_graded"`
	RowsSkipped  int            `json:"rows_skipped"`
	PicksGraded  map[string]int `json:"picks_graded"`
	SkipReasons  map[string]int `json:"skip_reasons"`
	Outputs      []string       `json:"outputs,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}

// ReasonCount is one entry of the skip breakdown
type ReasonCount struct {
	Reason string
	Count  int
}

// SortedReasons orders skip reasons by count descending, then by reason
func (s *RunSummary) SortedReasons() []ReasonCount {
	out := make([]ReasonCount, 0, len(s.SkipReasons))
	for reason, n := range s.SkipReasons {
		out = append(out, ReasonCount{Reason: reason, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
