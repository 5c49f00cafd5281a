package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "manifest": {"createdDate": "2019-01-01", "curblrVersion": "1.1.0"},
  "features": [{
    "type": "Feature",
    "id": 7,
    "properties": {
      "location": {
        "shstRefId": "36229e5a535b71a9f0b19e1bf51c21be",
        "sideOfStreet": "right",
        "shstLocationStart": 72,
        "shstLocationEnd": 356,
        "objectId": "pole-12"
      },
      "regulations": [{
        "priority": 5,
        "rule": {"activity": "no parking", "reason": "street cleaning"},
        "userClasses": [{"classes": ["permit"]}],
        "timeSpans": [{
          "daysOfWeek": {"days": ["sa"]},
          "timesOfDay": [{"from": "08:00", "to": "12:00"}],
          "effectiveDates": [{"from": "04-01", "to": "11-30"}]
        }]
      }],
      "manager": "city"
    },
    "geometry": {"type": "LineString", "coordinates": [[-73.55, 45.51, 12.5], [-73.56, 45.52, 13.0]]}
  }]
}`

func TestDecodeCollection(t *testing.T) {
	c, err := DecodeCollection(strings.NewReader(sampleCollection))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	require.Len(t, c.Features, 1)

	f := c.Features[0]
	loc := f.Properties.Location
	require.NotNil(t, loc)
	assert.Equal(t, "36229e5a535b71a9f0b19e1bf51c21be", loc.ShstRefID)
	assert.Equal(t, "right", loc.SideOfStreet)
	assert.Equal(t, LocationRange{Start: 72, End: 356}, loc.Range())
	assert.Contains(t, loc.Extra, "objectId")

	require.Len(t, f.Properties.Regulations, 1)
	reg := f.Properties.Regulations[0]
	assert.Equal(t, 5, reg.Priority)
	assert.Equal(t, "no parking", reg.Rule.Activity)
	require.Len(t, reg.TimeSpans, 1)
	assert.True(t, reg.TimeSpans[0].DaysOfWeek.Contains(Saturday))
	assert.Equal(t, []TimeWindow{{From: "08:00", To: "12:00"}}, reg.TimeSpans[0].TimesOfDay)

	assert.Contains(t, f.Properties.Extra, "manager")
	assert.Contains(t, f.Extra, "id")
	assert.Contains(t, c.Extra, "manifest")
}

func TestEncodeCollectionKeepsUnknownFields(t *testing.T) {
	c, err := DecodeCollection(strings.NewReader(sampleCollection))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeCollection(&buf, c, ""))

	var got, want map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NoError(t, json.Unmarshal([]byte(sampleCollection), &want))
	assert.Equal(t, want, got)
}

func TestDecodeCollectionErrors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		_, err := DecodeCollection(strings.NewReader("{"))
		assert.ErrorIs(t, err, ErrInvalidCollection)
	})

	t.Run("missing offsets", func(t *testing.T) {
		doc := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"location":{"shstRefId":"a","shstLocationStart":1},"regulations":[]},"geometry":null}]}`
		_, err := DecodeCollection(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInvalidCollection)
		assert.ErrorIs(t, err, ErrMissingOffsets)
	})
}

func TestCollectionValidate(t *testing.T) {
	loc := &Location{ShstRefID: "a", ShstLocationStart: 0, ShstLocationEnd: 10}

	tests := []struct {
		name    string
		c       FeatureCollection
		wantErr error
	}{
		{
			name: "valid",
			c:    FeatureCollection{Features: []Feature{{Properties: Properties{Location: loc, Regulations: []Regulation{}}}}},
		},
		{
			name:    "wrong type",
			c:       FeatureCollection{Type: "Feature"},
			wantErr: ErrInvalidCollection,
		},
		{
			name:    "missing location",
			c:       FeatureCollection{Features: []Feature{{Properties: Properties{Regulations: []Regulation{}}}}},
			wantErr: ErrMissingLocation,
		},
		{
			name:    "missing regulations",
			c:       FeatureCollection{Features: []Feature{{Properties: Properties{Location: loc}}}},
			wantErr: ErrMissingRegulations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegulationMarshal(t *testing.T) {
	b, err := json.Marshal(DefaultRegulation())
	require.NoError(t, err)
	assert.JSONEq(t, `{"priority":100,"rule":{"activity":"parking"}}`, string(b))
	assert.True(t, DefaultRegulation().IsDefault())

	var decoded Regulation
	require.NoError(t, json.Unmarshal([]byte(`{"priority":100,"rule":{"activity":"parking"}}`), &decoded))
	assert.False(t, decoded.IsDefault(), "a decoded regulation is never the synthesized default")
}

func TestLocationRange(t *testing.T) {
	r := LocationRange{Start: 10, End: 20}
	assert.NoError(t, r.Validate())
	assert.Equal(t, 10.0, r.Length())
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(20))
	assert.True(t, r.Overlaps(LocationRange{Start: 15, End: 30}))
	assert.False(t, r.Overlaps(LocationRange{Start: 20, End: 30}), "touching is not overlap")

	assert.ErrorIs(t, LocationRange{Start: 5, End: 5}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, LocationRange{Start: 6, End: 5}.Validate(), ErrInvalidRange)
}

func TestLocationWithRange(t *testing.T) {
	loc := Location{ShstRefID: "a", SideOfStreet: "left", ShstLocationStart: 0, ShstLocationEnd: 100}
	got := loc.WithRange(LocationRange{Start: 25, End: 50})
	assert.Equal(t, LocationRange{Start: 25, End: 50}, got.Range())
	assert.Equal(t, LocationRange{Start: 0, End: 100}, loc.Range(), "original is unchanged")
	assert.Equal(t, ReferenceKey{RefID: "a", Side: "left"}, got.Key())
	assert.True(t, got.HasReference())
}
