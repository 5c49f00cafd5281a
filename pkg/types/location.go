package types

import (
	"encoding/json"
	"fmt"
)

// LocationRange is a span of offsets along a reference line, in meters.
type LocationRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Validate returns ErrInvalidRange unless Start < End.
func (r LocationRange) Validate() error {
	if !(r.Start < r.End) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

// Length returns End - Start.
func (r LocationRange) Length() float64 {
	return r.End - r.Start
}

// Overlaps reports whether r and o share an interior. Ranges that only touch
// at a boundary point do not overlap.
func (r LocationRange) Overlaps(o LocationRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether x lies in [Start, End).
func (r LocationRange) Contains(x float64) bool {
	return x >= r.Start && x < r.End
}

// ReferenceKey identifies a reference line and side of street.
type ReferenceKey struct {
	RefID string
	Side  string
}

// Location is the linear reference of a feature.
type Location struct {
	ShstRefID         string  `json:"shstRefId"`
	SideOfStreet      string  `json:"sideOfStreet"`
	ShstLocationStart float64 `json:"shstLocationStart"`
	ShstLocationEnd   float64 `json:"shstLocationEnd"`

	// Extra holds location fields not listed above (derivedFrom, marker,
	// objectId and the like).
	Extra map[string]json.RawMessage `json:"-"`
}

var locationKeys = []string{"shstRefId", "sideOfStreet", "shstLocationStart", "shstLocationEnd"}

// Range returns the offsets of l as a LocationRange.
func (l Location) Range() LocationRange {
	return LocationRange{Start: l.ShstLocationStart, End: l.ShstLocationEnd}
}

// Key returns the reference line and side l is measured along.
func (l Location) Key() ReferenceKey {
	return ReferenceKey{RefID: l.ShstRefID, Side: l.SideOfStreet}
}

// HasReference reports whether l names a reference line.
func (l Location) HasReference() bool {
	return l.ShstRefID != ""
}

// WithRange returns a copy of l whose offsets are replaced by r.
func (l Location) WithRange(r LocationRange) Location {
	l.ShstLocationStart = r.Start
	l.ShstLocationEnd = r.End
	return l
}

type locationWire struct {
	ShstRefID         string   `json:"shstRefId"`
	SideOfStreet      string   `json:"sideOfStreet"`
	ShstLocationStart *float64 `json:"shstLocationStart"`
	ShstLocationEnd   *float64 `json:"shstLocationEnd"`
}

// UnmarshalJSON decodes a location. Both offsets are required.
func (l *Location) UnmarshalJSON(data []byte) error {
	var w locationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ShstLocationStart == nil || w.ShstLocationEnd == nil {
		return ErrMissingOffsets
	}
	extra, err := splitExtra(data, locationKeys)
	if err != nil {
		return err
	}
	*l = Location{
		ShstRefID:         w.ShstRefID,
		SideOfStreet:      w.SideOfStreet,
		ShstLocationStart: *w.ShstLocationStart,
		ShstLocationEnd:   *w.ShstLocationEnd,
		Extra:             extra,
	}
	return nil
}

type locationAlias Location

// MarshalJSON writes the typed fields merged with Extra.
func (l Location) MarshalJSON() ([]byte, error) {
	return mergeExtra(locationAlias(l), l.Extra)
}

// ResolvedSegment is one element of the disjoint partition of a reference
// line: a range and the regulation that wins over it. Source is the index,
// within its group, of the feature the regulation came from.
type ResolvedSegment struct {
	Range      LocationRange `json:"range"`
	Regulation Regulation    `json:"regulation"`
	Source     int           `json:"-"`
}
