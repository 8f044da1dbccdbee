package models

// Outcome is the graded result of one pick
type Outcome int

const (
	// Ungradeable means a required score or line was missing or not numeric.
	Ungradeable Outcome = iota
	Win
	Loss
	Push
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "W"
	case Loss:
		return "L"
	case Push:
		return "P"
	default:
		return "ungradeable"
	}
}

// Graded reports whether the outcome may be posted to a tally
func (o Outcome) Graded() bool {
	return o == Win || o == Loss || o == Push
}

// Invert returns the outcome from the faded team's perspective
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return o
	}
}
