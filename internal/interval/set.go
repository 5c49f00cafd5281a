// Package interval provides a sorted set of disjoint ranges along a line,
// used to track the offsets already claimed by higher-precedence regulations.
package interval

import (
	"sort"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Set is a sorted list of disjoint, non-touching ranges. The zero value is an
// empty set ready to use. A Set is not safe for concurrent mutation.
type Set struct {
	ranges []types.LocationRange
}

// Len returns the number of disjoint ranges in the set.
func (s *Set) Len() int {
	return len(s.ranges)
}

// Ranges returns a copy of the ranges in ascending order.
func (s *Set) Ranges() []types.LocationRange {
	out := make([]types.LocationRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Insert adds r to the set, merging it with every range it overlaps or
// touches. Empty or inverted ranges are ignored.
func (s *Set) Insert(r types.LocationRange) {
	if !(r.Start < r.End) {
		return
	}
	// First range whose end reaches r.Start; it may touch or overlap r.
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].End >= r.Start })
	j := i
	for j < len(s.ranges) && s.ranges[j].Start <= r.End {
		r.Start = min(r.Start, s.ranges[j].Start)
		r.End = max(r.End, s.ranges[j].End)
		j++
	}
	merged := make([]types.LocationRange, 0, len(s.ranges)-(j-i)+1)
	merged = append(merged, s.ranges[:i]...)
	merged = append(merged, r)
	merged = append(merged, s.ranges[j:]...)
	s.ranges = merged
}

// Subtract returns the parts of r not covered by the set, in ascending order.
// The set is not modified. Sharing only a boundary point with a member does
// not remove anything from r.
func (s *Set) Subtract(r types.LocationRange) []types.LocationRange {
	if !(r.Start < r.End) {
		return nil
	}
	var out []types.LocationRange
	cur := r.Start
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].End > r.Start })
	for ; i < len(s.ranges) && s.ranges[i].Start < r.End; i++ {
		c := s.ranges[i]
		if c.Start > cur {
			out = append(out, types.LocationRange{Start: cur, End: c.Start})
		}
		cur = max(cur, c.End)
	}
	if cur < r.End {
		out = append(out, types.LocationRange{Start: cur, End: r.End})
	}
	return out
}

// Covers reports whether x lies inside a member range, end excluded.
func (s *Set) Covers(x float64) bool {
	i := sort.Search(len(s.ranges), func(k int) bool { return s.ranges[k].End > x })
	return i < len(s.ranges) && s.ranges[i].Start <= x
}
