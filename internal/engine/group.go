package engine

import "github.com/mesh-intelligence/curbmap/pkg/types"

// groupByReference returns the indices of features grouped by reference line
// and side of street, groups in order of first appearance. A feature without
// a reference id forms a group of its own.
func groupByReference(features []types.Feature, keep func(int) bool) [][]int {
	var groups [][]int
	byKey := make(map[types.ReferenceKey]int)
	for i, f := range features {
		if !keep(i) {
			continue
		}
		loc := f.Properties.Location
		if !loc.HasReference() {
			groups = append(groups, []int{i})
			continue
		}
		key := loc.Key()
		g, ok := byKey[key]
		if !ok {
			g = len(groups)
			byKey[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
