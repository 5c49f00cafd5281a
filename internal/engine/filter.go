package engine

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Stats describes one filter run.
type Stats struct {
	Groups        int // reference line groups resolved
	FeaturesIn    int // features in the input collection
	FeaturesOut   int // features in the output collection
	InvalidRanges int // features skipped because start >= end
	Defaulted     int // features with no active regulation
}

// Filter runs the filter pipeline. The zero value is not usable; call New.
type Filter struct {
	logger   *slog.Logger
	workers  int
	tieBreak types.TieBreak
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the logger used for skipped features.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithWorkers resolves up to n groups in parallel. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(f *Filter) { f.workers = n }
}

// WithTieBreak sets the policy for equal priorities.
func WithTieBreak(tb types.TieBreak) Option {
	return func(f *Filter) { f.tieBreak = tb }
}

// New returns a Filter with the given options applied.
func New(opts ...Option) *Filter {
	f := &Filter{logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run filters c for q and returns a collection whose features, per reference
// line and side, have pairwise non-overlapping ranges and exactly one
// regulation each. Features with an invalid range are logged and left out.
// A structurally invalid collection is returned as an error.
func (f *Filter) Run(c types.FeatureCollection, q types.Query) (types.FeatureCollection, Stats, error) {
	if err := c.Validate(); err != nil {
		return types.FeatureCollection{}, Stats{}, err
	}
	stats := Stats{FeaturesIn: len(c.Features)}

	valid := make([]bool, len(c.Features))
	for i, feat := range c.Features {
		loc := feat.Properties.Location
		if err := loc.Range().Validate(); err != nil {
			f.logger.Warn("skipping feature with invalid range",
				"index", i,
				"shst_ref_id", loc.ShstRefID,
				"side", loc.SideOfStreet,
				"start", loc.ShstLocationStart,
				"end", loc.ShstLocationEnd,
			)
			stats.InvalidRanges++
			continue
		}
		valid[i] = true
	}

	groups := groupByReference(c.Features, func(i int) bool { return valid[i] })
	stats.Groups = len(groups)

	results := make([][]types.Feature, len(groups))
	defaulted := make([]int, len(groups))
	resolveGroup := func(g int) {
		members := make([]types.Feature, len(groups[g]))
		entries := make([]Entry, len(groups[g]))
		for k, idx := range groups[g] {
			feat := c.Features[idx]
			reg, active := Select(feat.Properties.Regulations, q, f.tieBreak)
			if !active {
				defaulted[g]++
			}
			members[k] = feat
			entries[k] = Entry{Range: feat.Properties.Location.Range(), Regulation: reg, Source: k}
		}
		results[g] = Rebuild(members, Resolve(entries, f.tieBreak))
	}

	if f.workers > 1 && len(groups) > 1 {
		var eg errgroup.Group
		eg.SetLimit(f.workers)
		for g := range groups {
			eg.Go(func() error {
				resolveGroup(g)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return types.FeatureCollection{}, Stats{}, fmt.Errorf("resolve groups: %w", err)
		}
	} else {
		for g := range groups {
			resolveGroup(g)
		}
	}

	out := types.FeatureCollection{Type: types.TypeFeatureCollection, Extra: c.Extra}
	out.Features = make([]types.Feature, 0, len(c.Features))
	for g := range results {
		out.Features = append(out.Features, results[g]...)
		stats.Defaulted += defaulted[g]
	}
	stats.FeaturesOut = len(out.Features)

	f.logger.Debug("filtered collection",
		"query", q.String(),
		"groups", stats.Groups,
		"features_in", stats.FeaturesIn,
		"features_out", stats.FeaturesOut,
		"invalid_ranges", stats.InvalidRanges,
		"defaulted", stats.Defaulted,
	)
	return out, stats, nil
}

// FilterCurblr filters c for the given day code and "HH:MM" time with default
// options. Unknown day or time tokens match no regulation, so every feature
// falls back to the default regulation.
func FilterCurblr(c types.FeatureCollection, day, timeOfDay string) (types.FeatureCollection, error) {
	out, _, err := New().Run(c, types.NewQuery(day, timeOfDay))
	return out, err
}
