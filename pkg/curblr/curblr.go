// Package curblr provides the public API of the curbmap engine: filtering a
// CurbLR feature collection for a day and time and resolving overlapping
// regulations by priority. Implementation details stay internal.
//
// Example:
//
//	in, err := types.DecodeCollection(file)
//	if err != nil {
//	    return err
//	}
//	out, err := curblr.FilterCurblrData(in, "mo", "08:00")
package curblr

import (
	"log/slog"

	"github.com/mesh-intelligence/curbmap/internal/engine"
	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Version is the curbmap release.
const Version = "0.1.0"

// Option configures Filter.
type Option = engine.Option

// Stats describes one filter run.
type Stats = engine.Stats

// ActivityTotal is the curb length given to one activity.
type ActivityTotal = engine.ActivityTotal

// WithLogger sets the logger used for features skipped because of an invalid
// range. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return engine.WithLogger(l) }

// WithWorkers resolves up to n reference lines in parallel.
func WithWorkers(n int) Option { return engine.WithWorkers(n) }

// WithTieBreak sets which of two equal-priority regulations wins.
func WithTieBreak(tb types.TieBreak) Option { return engine.WithTieBreak(tb) }

// FilterCurblrData returns the features of c in force on day at timeOfDay,
// one regulation per feature and no overlapping ranges on any reference line
// and side. day is a two-letter code such as "mo"; timeOfDay is "HH:MM".
func FilterCurblrData(c types.FeatureCollection, day, timeOfDay string) (types.FeatureCollection, error) {
	return engine.FilterCurblr(c, day, timeOfDay)
}

// Filter is FilterCurblrData with a parsed query and options. It also reports
// run statistics.
func Filter(c types.FeatureCollection, q types.Query, opts ...Option) (types.FeatureCollection, Stats, error) {
	return engine.New(opts...).Run(c, q)
}

// Summarize totals resolved curb length per activity.
func Summarize(c types.FeatureCollection) []ActivityTotal {
	return engine.Summarize(c)
}
