package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a point in the day in minutes after midnight. 1440 is allowed
// so that "24:00" can close a window at the end of the day.
type TimeOfDay int

// Bounds for TimeOfDay.
const (
	MinutesPerDay           = 24 * 60
	InvalidTime   TimeOfDay = -1
)

// ParseTimeOfDay parses an "HH:MM" string. Hours run 0-24; "24:00" is the only
// accepted value with hour 24.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return InvalidTime, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return InvalidTime, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return InvalidTime, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return InvalidTime, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error. Intended for
// constants and tests.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Valid reports whether t lies in [0, 1440].
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// String formats t as "HH:MM".
func (t TimeOfDay) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}
