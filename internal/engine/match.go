package engine

import "github.com/mesh-intelligence/curbmap/pkg/types"

// IsActive reports whether reg is in force for q. A regulation without time
// spans is always in force; otherwise at least one span must match. An
// invalid query matches nothing.
func IsActive(reg types.Regulation, q types.Query) bool {
	if !q.Valid() {
		return false
	}
	if len(reg.TimeSpans) == 0 {
		return true
	}
	for _, span := range reg.TimeSpans {
		if span.Matches(q) {
			return true
		}
	}
	return false
}

// Select returns the effective regulation of regs for q: the active
// regulation with the lowest priority value, or the default regulation when
// none is active. Equal priorities are decided by tb.
func Select(regs []types.Regulation, q types.Query, tb types.TieBreak) (types.Regulation, bool) {
	best := -1
	for i, reg := range regs {
		if !IsActive(reg, q) {
			continue
		}
		if best < 0 || reg.Priority < regs[best].Priority ||
			(reg.Priority == regs[best].Priority && tb == types.TieBreakLastWins) {
			best = i
		}
	}
	if best < 0 {
		return types.DefaultRegulation(), false
	}
	return regs[best], true
}
