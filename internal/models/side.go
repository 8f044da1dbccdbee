package models

import "strings"

// Market is the kind of line a pick is made against
type Market int

const (
	MarketSpread Market = iota + 1
	MarketTotal
)

// Markets lists every gradeable market in report order
var Markets = []Market{MarketSpread, MarketTotal}

func (m Market) String() string {
	switch m {
	case MarketSpread:
		return "spread"
	case MarketTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Side is a canonical pick selection. SideNone means no pick was made.
type Side int

const (
	SideNone Side = iota
	SideHome
	SideAway
	SideOver
	SideUnder
)

// String returns the form written to report tables
func (s Side) String() string {
	switch s {
	case SideHome:
		return "Home"
	case SideAway:
		return "Away"
	case SideOver:
		return "Over"
	case SideUnder:
		return "Under"
	default:
		return ""
	}
}

// Market returns the market the side belongs to, or 0 for SideNone
func (s Side) Market() Market {
	switch s {
	case SideHome, SideAway:
		return MarketSpread
	case SideOver, SideUnder:
		return MarketTotal
	default:
		return 0
	}
}

// ParseSide normalizes a raw pick cell. Anything that is not one of the
// accepted tokens, including blanks and numeric prices, is SideNone.
func ParseSide(raw string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home", "h":
		return SideHome
	case "away", "a":
		return SideAway
	case "over", "o":
		return SideOver
	case "under", "u":
		return SideUnder
	default:
		return SideNone
	}
}
