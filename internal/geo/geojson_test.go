package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Berbek"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[111.8,-7.6],[111.9,-7.6],[111.9,-7.5],[111.8,-7.5],[111.8,-7.6]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"NAME_2": "Pace"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [[[[112.0,-7.7],[112.1,-7.7],[112.1,-7.6],[112.0,-7.6],[112.0,-7.7]]]]
      }
    }
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	c, err := ParseGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Len(t, c.Features, 2)

	assert.Equal(t, "Berbek", c.Features[0].Name)
	assert.Equal(t, "Pace", c.Features[1].Name)
	assert.True(t, c.Features[0].Contains(111.85, -7.55))
	assert.True(t, c.Features[1].Contains(112.05, -7.65))
}

func TestParseGeoJSON_Invalid(t *testing.T) {
	_, err := ParseGeoJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestMarshalGeoJSON_RoundTrip(t *testing.T) {
	c, err := ParseGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)

	data, err := MarshalGeoJSON(c)
	require.NoError(t, err)

	back, err := ParseGeoJSON(data)
	require.NoError(t, err)
	require.Len(t, back.Features, 2)
	assert.Equal(t, "Berbek", back.Features[0].Name)
}

func TestDisplayName_Priority(t *testing.T) {
	assert.Equal(t, "A", DisplayName(map[string]any{"name": "A", "NAME_2": "B"}))
	assert.Equal(t, "B", DisplayName(map[string]any{"NAME_2": "B"}))
	assert.Equal(t, "", DisplayName(nil))
}

func TestBBoxPolygon(t *testing.T) {
	c := BBoxPolygon("NGANJUK", nganjukFallback)
	require.Len(t, c.Features, 1)
	assert.Equal(t, "NGANJUK", c.Features[0].Name)
	assert.True(t, c.Features[0].Contains(111.9, -7.5))
	assert.False(t, c.Features[0].Contains(113.0, -7.5))
}
