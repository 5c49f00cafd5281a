package engine

import (
	"cmp"
	"slices"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// ActivityTotal is the curb length given to one activity in a filtered
// collection.
type ActivityTotal struct {
	Activity string  `json:"activity"`
	Segments int     `json:"segments"`
	Length   float64 `json:"length"`
}

// Summarize totals the length of every feature per activity of its first
// regulation. Meant for filtered output, where each feature has exactly one.
// Results are ordered by length, longest first, then by activity.
func Summarize(c types.FeatureCollection) []ActivityTotal {
	byActivity := make(map[string]*ActivityTotal)
	for _, f := range c.Features {
		if f.Properties.Location == nil || len(f.Properties.Regulations) == 0 {
			continue
		}
		act := f.Properties.Regulations[0].Rule.Activity
		t, ok := byActivity[act]
		if !ok {
			t = &ActivityTotal{Activity: act}
			byActivity[act] = t
		}
		t.Segments++
		t.Length += f.Properties.Location.Range().Length()
	}

	out := make([]ActivityTotal, 0, len(byActivity))
	for _, t := range byActivity {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b ActivityTotal) int {
		if c := cmp.Compare(b.Length, a.Length); c != 0 {
			return c
		}
		return cmp.Compare(a.Activity, b.Activity)
	})
	return out
}
