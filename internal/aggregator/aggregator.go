// Package aggregator accumulates graded picks into the five reporting buckets.
//
// An Aggregator is not safe for concurrent use. Parallel callers grade into
// separate instances and combine them with Merge, which is associative and
// commutative.
package aggregator

import (
	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// TeamKey keys team_ats and team_fade_ats
type TeamKey struct {
	Team        string
	Participant string
}

// SideKey keys home_away_ats and totals
type SideKey struct {
	Participant string
	Side        models.Side
}

// TeamSideKey keys team_totals
type TeamSideKey struct {
	Team        string
	Participant string
	Side        models.Side
}

// Aggregator owns the five bucket maps and the skip accounting of a run
type Aggregator struct {
	TeamATS     map[TeamKey]models.Tally
	TeamFadeATS map[TeamKey]models.Tally
	HomeAwayATS map[SideKey]models.Tally
	Totals      map[SideKey]models.Tally
	TeamTotals  map[TeamSideKey]models.Tally

	Stats Stats
}

// New creates an empty aggregator
func New() *Aggregator {
	return &Aggregator{
		TeamATS:     make(map[TeamKey]models.Tally),
		TeamFadeATS: make(map[TeamKey]models.Tally),
		HomeAwayATS: make(map[SideKey]models.Tally),
		Totals:      make(map[SideKey]models.Tally),
		TeamTotals:  make(map[TeamSideKey]models.Tally),
		Stats:       NewStats(),
	}
}

// Add posts one graded pick. Ungradeable outcomes never reach a bucket and
// are counted as a failed grade for the pick's market instead.
// It reports whether the pick was posted.
func (a *Aggregator) Add(game *models.GameRecord, pick models.Pick, outcome models.Outcome) bool {
	if !outcome.Graded() || pick.Side.Market() != pick.Market {
		a.Stats.SkipPick(GradeFailedReason(pick.Market))
		return false
	}

	switch pick.Market {
	case models.MarketSpread:
		post(a.TeamATS, TeamKey{Team: game.TeamFor(pick.Side), Participant: pick.Participant}, outcome)
		post(a.TeamFadeATS, TeamKey{Team: game.OpponentFor(pick.Side), Participant: pick.Participant}, outcome.Invert())
		post(a.HomeAwayATS, SideKey{Participant: pick.Participant, Side: pick.Side}, outcome)
	case models.MarketTotal:
		post(a.Totals, SideKey{Participant: pick.Participant, Side: pick.Side}, outcome)
		post(a.TeamTotals, TeamSideKey{Team: game.HomeTeam, Participant: pick.Participant, Side: pick.Side}, outcome)
		post(a.TeamTotals, TeamSideKey{Team: game.AwayTeam, Participant: pick.Participant, Side: pick.Side}, outcome)
	}

	a.Stats.PicksGraded[pick.Market]++
	return true
}

// Merge folds other into a. other is left unchanged.
func (a *Aggregator) Merge(other *Aggregator) {
	mergeInto(a.TeamATS, other.TeamATS)
	mergeInto(a.TeamFadeATS, other.TeamFadeATS)
	mergeInto(a.HomeAwayATS, other.HomeAwayATS)
	mergeInto(a.Totals, other.Totals)
	mergeInto(a.TeamTotals, other.TeamTotals)
	a.Stats.Merge(other.Stats)
}

// Rows flattens every bucket for a season, each bucket sorted by its key tuple
func (a *Aggregator) Rows(season string) []models.TallyRow {
	var rows []models.TallyRow

	for _, bucket := range models.Buckets {
		start := len(rows)
		switch bucket {
		case models.BucketTeamATS:
			for k, t := range a.TeamATS {
				rows = append(rows, models.TallyRow{Season: season, Bucket: bucket, Team: k.Team, Participant: k.Participant, Tally: t})
			}
		case models.BucketTeamFadeATS:
			for k, t := range a.TeamFadeATS {
				rows = append(rows, models.TallyRow{Season: season, Bucket: bucket, Team: k.Team, Participant: k.Participant, Tally: t})
			}
		case models.BucketHomeAwayATS:
			for k, t := range a.HomeAwayATS {
				rows = append(rows, models.TallyRow{Season: season, Bucket: bucket, Participant: k.Participant, Side: k.Side.String(), Tally: t})
			}
		case models.BucketTotals:
			for k, t := range a.Totals {
				rows = append(rows, models.TallyRow{Season: season, Bucket: bucket, Participant: k.Participant, Side: k.Side.String(), Tally: t})
			}
		case models.BucketTeamTotals:
			for k, t := range a.TeamTotals {
				rows = append(rows, models.TallyRow{Season: season, Bucket: bucket, Team: k.Team, Participant: k.Participant, Side: k.Side.String(), Tally: t})
			}
		}
		models.SortTallyRows(rows[start:])
	}

	return rows
}

// Sum totals every entry of one bucket
func (a *Aggregator) Sum(bucket models.Bucket) models.Tally {
	var total models.Tally
	for _, row := range a.Rows("") {
		if row.Bucket == bucket {
			total = total.Add(row.Tally)
		}
	}
	return total
}

func post[K comparable](bucket map[K]models.Tally, key K, outcome models.Outcome) {
	t := bucket[key]
	if t.Record(outcome) {
		bucket[key] = t
	}
}

func mergeInto[K comparable](dst, src map[K]models.Tally) {
	for k, t := range src {
		dst[k] = dst[k].Add(t)
	}
}
