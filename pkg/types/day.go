package types

import (
	"fmt"
	"strings"
)

// DayCode is a two-letter CurbLR weekday abbreviation.
type DayCode string

// Day codes, Monday first as in CurbLR.
const (
	Monday    DayCode = "mo"
	Tuesday   DayCode = "tu"
	Wednesday DayCode = "we"
	Thursday  DayCode = "th"
	Friday    DayCode = "fr"
	Saturday  DayCode = "sa"
	Sunday    DayCode = "su"
)

// Days lists every day code in week order.
var Days = []DayCode{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// dayNames maps accepted spellings to their day code.
var dayNames = map[string]DayCode{
	"mo": Monday, "monday": Monday,
	"tu": Tuesday, "tuesday": Tuesday,
	"we": Wednesday, "wednesday": Wednesday,
	"th": Thursday, "thursday": Thursday,
	"fr": Friday, "friday": Friday,
	"sa": Saturday, "saturday": Saturday,
	"su": Sunday, "sunday": Sunday,
}

// ParseDay normalizes s to a DayCode. Matching is case-insensitive and accepts
// both the two-letter code and the full English day name.
func ParseDay(s string) (DayCode, error) {
	d, ok := dayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return d, nil
}

// Valid reports whether d is one of the seven canonical day codes.
func (d DayCode) Valid() bool {
	for _, c := range Days {
		if d == c {
			return true
		}
	}
	return false
}

// Normalize returns the canonical code for d, or "" if d is not recognized.
func (d DayCode) Normalize() DayCode {
	n, err := ParseDay(string(d))
	if err != nil {
		return ""
	}
	return n
}
