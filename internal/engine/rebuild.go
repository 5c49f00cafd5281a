package engine

import "github.com/mesh-intelligence/curbmap/pkg/types"

// Rebuild turns the resolved segments of a group back into features. Each
// output feature copies its source feature, including geometry and unknown
// fields, and replaces the location offsets and the regulation list.
func Rebuild(group []types.Feature, segments []types.ResolvedSegment) []types.Feature {
	out := make([]types.Feature, 0, len(segments))
	for _, seg := range segments {
		src := group[seg.Source]
		loc := src.Properties.Location.WithRange(seg.Range)

		f := src
		f.Properties.Location = &loc
		f.Properties.Regulations = []types.Regulation{seg.Regulation}
		out = append(out, f)
	}
	return out
}
