package types

import "fmt"

// Query is the day and time of day a collection is filtered against.
type Query struct {
	Day  DayCode
	Time TimeOfDay
}

// NewQuery builds a Query from raw day and time tokens. Unknown tokens do not
// fail: the returned query is invalid and matches no regulation.
func NewQuery(day, timeOfDay string) Query {
	q, err := ParseQuery(day, timeOfDay)
	if err != nil {
		return Query{Time: InvalidTime}
	}
	return q
}

// ParseQuery is the strict form of NewQuery. It returns ErrInvalidDay or
// ErrInvalidTime when a token cannot be parsed.
func ParseQuery(day, timeOfDay string) (Query, error) {
	d, err := ParseDay(day)
	if err != nil {
		return Query{Time: InvalidTime}, err
	}
	t, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Query{Time: InvalidTime}, err
	}
	return Query{Day: d, Time: t}, nil
}

// Valid reports whether both the day and the time are recognized.
func (q Query) Valid() bool {
	return q.Day.Valid() && q.Time.Valid()
}

func (q Query) String() string {
	return fmt.Sprintf("%s %s", q.Day, q.Time)
}

// TieBreak decides which of two equal-priority regulations takes precedence.
type TieBreak int

// Tie-break policies. FirstWins keeps input order and is the default.
const (
	TieBreakFirstWins TieBreak = iota
	TieBreakLastWins
)

// ParseTieBreak maps a configuration value to a TieBreak. The empty string
// selects the default.
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "first":
		return TieBreakFirstWins, nil
	case "last":
		return TieBreakLastWins, nil
	default:
		return TieBreakFirstWins, fmt.Errorf("%w: %q", ErrTieBreakUnknown, s)
	}
}

func (tb TieBreak) String() string {
	if tb == TieBreakLastWins {
		return "last"
	}
	return "first"
}
