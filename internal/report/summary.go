package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// WriteSummary prints the end-of-run summary
func WriteSummary(w io.Writer, s *models.RunSummary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Season: %s\n", s.Season)
	fmt.Fprintf(&b, "Files: %d read, %d skipped\n", s.FilesRead, s.FilesSkipped)
	fmt.Fprintf(&b, "Rows seen: %d\n", s.RowsSeen)
	fmt.Fprintf(&b, "Rows graded: %d\n", s.RowsGraded)
	fmt.Fprintf(&b, "Rows skipped: %d\n", s.RowsSkipped)

	picks := make([]string, 0, len(models.Markets))
	for _, m := range models.Markets {
		picks = append(picks, fmt.Sprintf("%s=%d", m, s.PicksGraded[m.String()]))
	}
	fmt.Fprintf(&b, "Picks graded: %s\n", strings.Join(picks, " "))

	reasons := s.SortedReasons()
	if len(reasons) == 0 {
		b.WriteString("Skip reasons: none\n")
	} else {
		b.WriteString("Skip reasons:\n")
		for _, r := range reasons {
			fmt.Fprintf(&b, "  %s: %d\n", r.Reason, r.Count)
		}
	}

	for _, path := range s.Outputs {
		fmt.Fprintf(&b, "Wrote: %s\n", path)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
