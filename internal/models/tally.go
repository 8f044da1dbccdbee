package models

import (
	"fmt"
	"sort"
	"time"
)

// Tally is a wins/losses/pushes record
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
}

// Record counts a graded outcome. Ungradeable outcomes are rejected.
func (t *Tally) Record(o Outcome) bool {
	switch o {
	case Win:
		t.Wins++
	case Loss:
		t.Losses++
	case Push:
		t.Pushes++
	default:
		return false
	}
	return true
}

// Add returns the element-wise sum of two tallies
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Wins:   t.Wins + o.Wins,
		Losses: t.Losses + o.Losses,
		Pushes: t.Pushes + o.Pushes,
	}
}

// Games counts pushes as games played
func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Pushes
}

// WinPctTenths is 1000*wins/games rounded half-up, i.e. the win percentage
// in tenths of a point. Zero games yields zero.
func (t Tally) WinPctTenths() int {
	g := t.Games()
	if g == 0 {
		return 0
	}
	return (2000*t.Wins + g) / (2 * g)
}

// WinPct formats the win percentage with one decimal place
func (t Tally) WinPct() string {
	tenths := t.WinPctTenths()
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// Bucket names one of the five reporting dimensions
type Bucket string

const (
	BucketTeamATS     Bucket = "team_ats"
	BucketTeamFadeATS Bucket = "team_fade_ats"
	BucketHomeAwayATS Bucket = "home_away_ats"
	BucketTotals      Bucket = "totals"
	BucketTeamTotals  Bucket = "team_totals"
)

// Buckets lists the reporting dimensions in output order
var Buckets = []Bucket{
	BucketTeamATS,
	BucketTeamFadeATS,
	BucketHomeAwayATS,
	BucketTotals,
	BucketTeamTotals,
}

// TallyRow is one bucket entry flattened for reporting and persistence.
// Team is empty for buckets keyed without a team, Side for buckets keyed without a side.
type TallyRow struct {
	Season      string    `db:"season" json:"season"`
	Bucket      Bucket    `db:"bucket" json:"bucket"`
	Team        string    `db:"team" json:"team,omitempty"`
	Participant string    `db:"participant" json:"participant"`
	Side        string    `db:"side" json:"side,omitempty"`
	Tally       Tally     `json:"tally"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// SortTallyRows orders rows of one bucket by their key tuple (team, participant, side).
// Components a bucket does not use are empty and compare equal.
func SortTallyRows(rows []TallyRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Participant != b.Participant {
			return a.Participant < b.Participant
		}
		return a.Side < b.Side
	})
}
