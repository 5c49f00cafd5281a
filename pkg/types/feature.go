package types

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// GeoJSON type names.
const (
	TypeFeature           = "Feature"
	TypeFeatureCollection = "FeatureCollection"
)

// Properties are the CurbLR properties of a feature.
type Properties struct {
	Location    *Location    `json:"location"`
	Regulations []Regulation `json:"regulations"`

	// Extra holds the remaining properties, such as manager or rule sets
	// the engine does not read.
	Extra map[string]json.RawMessage `json:"-"`
}

var propertiesKeys = []string{"location", "regulations"}

type propertiesAlias Properties

// UnmarshalJSON decodes the known properties and keeps the rest in Extra.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var a propertiesAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, propertiesKeys)
	if err != nil {
		return err
	}
	*p = Properties(a)
	p.Extra = extra
	return nil
}

// MarshalJSON writes the known properties merged with Extra.
func (p Properties) MarshalJSON() ([]byte, error) {
	return mergeExtra(propertiesAlias(p), p.Extra)
}

// Feature is a CurbLR GeoJSON feature. Geometry is carried as its source
// encoding and is never interpreted by the engine.
type Feature struct {
	Type       string          `json:"type"`
	Properties Properties      `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`

	// Extra holds feature members other than type, properties and geometry,
	// such as id or bbox.
	Extra map[string]json.RawMessage `json:"-"`
}

var featureKeys = []string{"type", "properties", "geometry"}

// Validate checks that f carries the fields the engine requires.
func (f Feature) Validate() error {
	if f.Properties.Location == nil {
		return ErrMissingLocation
	}
	if f.Properties.Regulations == nil {
		return ErrMissingRegulations
	}
	return nil
}

type featureAlias Feature

// UnmarshalJSON decodes a feature and keeps unknown members in Extra.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var a featureAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, featureKeys)
	if err != nil {
		return err
	}
	*f = Feature(a)
	f.Extra = extra
	return nil
}

// MarshalJSON writes the feature merged with Extra.
func (f Feature) MarshalJSON() ([]byte, error) {
	if f.Type == "" {
		f.Type = TypeFeature
	}
	if f.Geometry == nil {
		f.Geometry = json.RawMessage("null")
	}
	return mergeExtra(featureAlias(f), f.Extra)
}

// FeatureCollection is a CurbLR GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`

	// Extra holds collection members such as manifest or bbox.
	Extra map[string]json.RawMessage `json:"-"`
}

var collectionKeys = []string{"type", "features"}

// Validate checks the collection type and every feature. The first failure is
// returned wrapped with the feature index.
func (c FeatureCollection) Validate() error {
	if c.Type != "" && c.Type != TypeFeatureCollection {
		return fmt.Errorf("%w: type %q", ErrInvalidCollection, c.Type)
	}
	for i, f := range c.Features {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return nil
}

type collectionAlias FeatureCollection

// UnmarshalJSON decodes a collection and keeps unknown members in Extra.
func (c *FeatureCollection) UnmarshalJSON(data []byte) error {
	var a collectionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := splitExtra(data, collectionKeys)
	if err != nil {
		return err
	}
	*c = FeatureCollection(a)
	c.Extra = extra
	return nil
}

// MarshalJSON writes the collection merged with Extra. A nil feature list is
// written as an empty array.
func (c FeatureCollection) MarshalJSON() ([]byte, error) {
	if c.Type == "" {
		c.Type = TypeFeatureCollection
	}
	if c.Features == nil {
		c.Features = []Feature{}
	}
	return mergeExtra(collectionAlias(c), c.Extra)
}

// DecodeCollection reads one feature collection from r.
func DecodeCollection(r io.Reader) (FeatureCollection, error) {
	var c FeatureCollection
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return FeatureCollection{}, fmt.Errorf("%w: %w", ErrInvalidCollection, err)
	}
	return c, nil
}

// EncodeCollection writes c to w as JSON, indented when indent is non-empty.
func EncodeCollection(w io.Writer, c FeatureCollection, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(c)
}

// EncodeFeatureLines writes the features of c as newline-delimited GeoJSON,
// one compact feature per line. Collection-level fields are not written.
func EncodeFeatureLines(w io.Writer, c FeatureCollection) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, f := range c.Features {
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	return bw.Flush()
}
