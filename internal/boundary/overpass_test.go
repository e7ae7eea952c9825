package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestAssembleOverpass_SingleRelation(t *testing.T) {
	resp := overpassResponse{Elements: []overpassElement{
		{
			Type: "way", ID: 1,
			Geometry: []overpassPoint{
				{Lat: -7.6, Lon: 111.8},
				{Lat: -7.6, Lon: 111.9},
				{Lat: -7.5, Lon: 111.9},
				{Lat: -7.5, Lon: 111.8},
			},
		},
		{
			Type:    "relation",
			Members: []overpassMember{{Type: "way", Ref: 1, Role: "outer"}},
			Tags:    map[string]string{"name": "Berbek"},
		},
	}}

	col := assembleOverpass(resp)
	require.Len(t, col.Features, 1)
	assert.Equal(t, "Berbek", col.Features[0].Name)

	poly, ok := col.Features[0].Geometry.(*geom.Polygon)
	require.True(t, ok)
	// The open way is closed by repeating its first vertex.
	coords := poly.LinearRing(0).Coords()
	assert.Equal(t, coords[0], coords[len(coords)-1])
	assert.True(t, col.Features[0].Contains(111.85, -7.55))
}

func TestAssembleOverpass_MultipleOuterRings(t *testing.T) {
	resp := overpassResponse{Elements: []overpassElement{
		{Type: "way", ID: 1, Geometry: []overpassPoint{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0},
		}},
		{Type: "way", ID: 2, Geometry: []overpassPoint{
			{Lat: 5, Lon: 5}, {Lat: 5, Lon: 6}, {Lat: 6, Lon: 6}, {Lat: 6, Lon: 5},
		}},
		{
			Type: "relation",
			Members: []overpassMember{
				{Type: "way", Ref: 1, Role: "outer"},
				{Type: "way", Ref: 2, Role: ""},
			},
			Tags: map[string]string{"name": "Split"},
		},
	}}

	col := assembleOverpass(resp)
	require.Len(t, col.Features, 1)
	_, ok := col.Features[0].Geometry.(*geom.MultiPolygon)
	assert.True(t, ok)
}

func TestAssembleOverpass_InnerMembersIgnored(t *testing.T) {
	resp := overpassResponse{Elements: []overpassElement{
		{Type: "way", ID: 1, Geometry: []overpassPoint{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1},
		}},
		{
			Type:    "relation",
			Members: []overpassMember{{Type: "way", Ref: 1, Role: "inner"}},
		},
	}}

	col := assembleOverpass(resp)
	assert.Empty(t, col.Features)
}

func TestAssembleOverpass_MissingWayRefSkipped(t *testing.T) {
	resp := overpassResponse{Elements: []overpassElement{
		{
			Type:    "relation",
			Members: []overpassMember{{Type: "way", Ref: 99, Role: "outer"}},
			Tags:    map[string]string{"name": "Ghost"},
		},
	}}

	col := assembleOverpass(resp)
	assert.Empty(t, col.Features)
}
