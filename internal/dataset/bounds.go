package dataset

import (
	"bytes"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Bounds is a lon/lat bounding box. Empty is set when no feature carried a
// readable geometry.
type Bounds struct {
	orb.Bound
	Empty bool
}

// BBox returns the GeoJSON bbox [west, south, east, north], or nil when b is
// empty.
func (b Bounds) BBox() []float64 {
	if b.Empty {
		return nil
	}
	return []float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
}

// CollectionBounds returns the union of the bounds of every feature geometry
// in c. Geometries that cannot be decoded are logged at debug level and
// skipped; the features themselves are untouched.
func CollectionBounds(c types.FeatureCollection, logger *slog.Logger) Bounds {
	out := Bounds{Empty: true}
	for i, f := range c.Features {
		raw := bytes.TrimSpace(f.Geometry)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil || g.Geometry() == nil {
			logger.Debug("unreadable geometry", "index", i, "err", err)
			continue
		}
		b := g.Geometry().Bound()
		if b.IsEmpty() {
			continue
		}
		if out.Empty {
			out = Bounds{Bound: b}
			continue
		}
		out.Bound = out.Bound.Union(b)
	}
	return out
}
