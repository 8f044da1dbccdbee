package aggregator

import (
	"fmt"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// Row-level skip reasons. Their counts always sum to RowsSkipped.
const (
	ReasonMissingGameID    = "missing game_id"
	ReasonDuplicateGameID  = "duplicate game_id"
	ReasonMissingScores    = "missing score(s)"
	ReasonNonNumericScores = "non-numeric score(s)"
	ReasonNoGradeablePicks = "no gradeable picks"
)

// MissingColumnsReason is recorded once per row of a table that lacks a core column
func MissingColumnsReason(file string) string {
	return fmt.Sprintf("missing core columns (%s)", file)
}

// UnreadableTableReason is a file-level reason: the table could not be
// opened or parsed, so none of its rows were seen. It counts files, not rows.
func UnreadableTableReason(file string) string {
	return fmt.Sprintf("unreadable table (%s)", file)
}

// NoPickReason is a pick-level reason: the participant's cell held no valid side
func NoPickReason(m models.Market) string {
	return m.String() + ": no pick"
}

// GradeFailedReason is a pick-level reason: a side was picked but the game
// could not be graded
func GradeFailedReason(m models.Market) string {
	return m.String() + ": grade failed"
}

// Stats is the skip accounting of a run or a partial run
type Stats struct {
	FilesRead    int
	FilesSkipped int
	RowsSeen     int
	RowsGraded   int
	RowsSkipped  int
	PicksGraded  map[models.Market]int
	PicksSkipped int
	Reasons      map[string]int
}

// NewStats creates empty counters
func NewStats() Stats {
	return Stats{
		PicksGraded: make(map[models.Market]int),
		Reasons:     make(map[string]int),
	}
}

// GradeRow records a row that contributed at least one graded pick
func (s *Stats) GradeRow() {
	s.RowsSeen++
	s.RowsGraded++
}

// SkipRow records a row excluded from every bucket
func (s *Stats) SkipRow(reason string) {
	s.SkipRows(reason, 1)
}

// SkipRows records n excluded rows sharing one reason
func (s *Stats) SkipRows(reason string, n int) {
	if n <= 0 {
		return
	}
	s.RowsSeen += n
	s.RowsSkipped += n
	s.Reasons[reason] += n
}

// SkipFile records a table that was discovered but could not be read
func (s *Stats) SkipFile(reason string) {
	s.FilesRead++
	s.FilesSkipped++
	s.Reasons[reason]++
}

// SkipPick records a pick excluded from every bucket
func (s *Stats) SkipPick(reason string) {
	s.PicksSkipped++
	s.Reasons[reason]++
}

// Merge adds other's counters into s
func (s *Stats) Merge(other Stats) {
	s.FilesRead += other.FilesRead
	s.FilesSkipped += other.FilesSkipped
	s.RowsSeen += other.RowsSeen
	s.RowsGraded += other.RowsGraded
	s.RowsSkipped += other.RowsSkipped
	s.PicksSkipped += other.PicksSkipped
	for m, n := range other.PicksGraded {
		s.PicksGraded[m] += n
	}
	for reason, n := range other.Reasons {
		s.Reasons[reason] += n
	}
}

// Summary converts the counters into the run summary for a season
func (s *Stats) Summary(season string) *models.RunSummary {
	summary := &models.RunSummary{
		Season:       season,
		FilesRead:    s.FilesRead,
		FilesSkipped: s.FilesSkipped,
		RowsSeen:     s.RowsSeen,
		RowsGraded:   s.RowsGraded,
		RowsSkipped:  s.RowsSkipped,
		PicksGraded:  make(map[string]int, len(models.Markets)),
		SkipReasons:  make(map[string]int, len(s.Reasons)),
	}
	for _, m := range models.Markets {
		summary.PicksGraded[m.String()] = s.PicksGraded[m]
	}
	for reason, n := range s.Reasons {
		summary.SkipReasons[reason] = n
	}
	return summary
}
