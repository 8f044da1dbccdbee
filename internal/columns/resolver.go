// Package columns maps the loosely named headers of a weekly final table to
// the canonical fields needed for grading.
//
// Every canonical field has an ordered alias list. Lookups are case-insensitive
// and the first alias present in the header wins, even when a later alias would
// be a more specific match. A field with no matching alias is absent; callers
// decide what absence means (an absent line column disables that market for the
// whole table, an absent pick column means the participant made no picks).
package columns

import (
	"strings"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"
)

// Field is a canonical column name
type Field string

const (
	GameID     Field = "game_id"
	HomeTeam   Field = "home_team"
	AwayTeam   Field = "away_team"
	HomeScore  Field = "home_score"
	AwayScore  Field = "away_score"
	SpreadHome Field = "spread_home"
	TotalLine  Field = "total"
)

// CoreFields must all be present for a table to be graded
var CoreFields = []Field{GameID, HomeTeam, AwayTeam, HomeScore, AwayScore}

// Aliases lists accepted header names per field, in priority order
var Aliases = map[Field][]string{
	GameID:     {"game_id"},
	HomeTeam:   {"home_team"},
	AwayTeam:   {"away_team"},
	HomeScore:  {"home_score"},
	AwayScore:  {"away_score"},
	SpreadHome: {"spread_home", "home_spread", "spread"},
	TotalLine:  {"total", "over_under", "ou", "total_points"},
}

// LineField is the line column a market is graded against
var LineField = map[models.Market]Field{
	models.MarketSpread: SpreadHome,
	models.MarketTotal:  TotalLine,
}

// PickSuffixes are appended to a participant name to find their pick column
var PickSuffixes = map[models.Market][]string{
	models.MarketSpread: {"_spread", "_spread_pick", "_ATS"},
	models.MarketTotal:  {"_total", "_total_pick", "_OU"},
}

// Column is a resolved header
type Column struct {
	Name  string
	Index int
}

// Resolver answers column lookups for one table header
type Resolver struct {
	header []string
	folded map[string]int
}

// NewResolver builds the case-folded header index once per table.
// When two headers fold to the same name the leftmost one is used.
func NewResolver(header []string) *Resolver {
	r := &Resolver{
		header: header,
		folded: make(map[string]int, len(header)),
	}
	for i, name := range header {
		key := fold(name)
		if key == "" {
			continue
		}
		if _, ok := r.folded[key]; !ok {
			r.folded[key] = i
		}
	}
	return r
}

// Lookup returns the first alias present in the header
func (r *Resolver) Lookup(aliases ...string) (Column, bool) {
	for _, alias := range aliases {
		if idx, ok := r.folded[fold(alias)]; ok {
			return Column{Name: r.header[idx], Index: idx}, true
		}
	}
	return Column{}, false
}

// Resolve looks up a canonical field
func (r *Resolver) Resolve(f Field) (Column, bool) {
	aliases, ok := Aliases[f]
	if !ok {
		return Column{}, false
	}
	return r.Lookup(aliases...)
}

// Pick looks up a participant's pick column for a market
func (r *Resolver) Pick(participant string, m models.Market) (Column, bool) {
	return r.Lookup(PickAliases(participant, m)...)
}

// Missing returns the fields that could not be resolved, in argument order
func (r *Resolver) Missing(fields ...Field) []Field {
	var missing []Field
	for _, f := range fields {
		if _, ok := r.Resolve(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// PickAliases generates the candidate pick headers for a participant
func PickAliases(participant string, m models.Market) []string {
	name := strings.TrimSpace(participant)
	suffixes := PickSuffixes[m]
	aliases := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		aliases = append(aliases, name+suffix)
	}
	return aliases
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}
