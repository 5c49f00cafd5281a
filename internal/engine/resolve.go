package engine

import (
	"cmp"
	"slices"

	"github.com/mesh-intelligence/curbmap/internal/interval"
	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Entry is one feature of a group reduced to its range and effective
// regulation. Source indexes the feature within its group.
type Entry struct {
	Range      types.LocationRange
	Regulation types.Regulation
	Source     int
}

// Resolve partitions the ranges of entries, which must share a reference line
// and side, into disjoint segments each carrying the regulation that wins
// there. Entries are painted in precedence order; every entry claims its full
// range, so a lower-precedence entry only shows where no higher-precedence
// range reaches. The result is sorted by start offset.
//
// Every entry range must satisfy Start < End.
func Resolve(entries []Entry, tb types.TieBreak) []types.ResolvedSegment {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(entries[a].Regulation.Priority, entries[b].Regulation.Priority); c != 0 {
			return c
		}
		if tb == types.TieBreakLastWins {
			return cmp.Compare(b, a)
		}
		return cmp.Compare(a, b)
	})

	var claimed interval.Set
	out := make([]types.ResolvedSegment, 0, len(entries))
	for _, i := range order {
		e := entries[i]
		for _, r := range claimed.Subtract(e.Range) {
			out = append(out, types.ResolvedSegment{Range: r, Regulation: e.Regulation, Source: e.Source})
		}
		claimed.Insert(e.Range)
	}

	slices.SortFunc(out, func(a, b types.ResolvedSegment) int {
		return cmp.Compare(a.Range.Start, b.Range.Start)
	})
	return out
}
