// Package engine filters a CurbLR feature collection for a day and time of
// day and resolves overlapping regulations on the same reference line.
//
// The pipeline runs per query: features are grouped by reference line and
// side of street, each feature is reduced to its effective regulation
// (Select), each group is painted by priority into a disjoint partition
// (Resolve), and output features are rebuilt from the partition (Rebuild).
// Nothing is shared between calls; a Filter may be used concurrently.
package engine
