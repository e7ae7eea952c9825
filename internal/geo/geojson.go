// Package geo holds the geometry side of the engine: GeoJSON boundary
// features, bounds derivation, point-in-polygon classification, centroids,
// and choropleth coloring. All functions are pure; state lives in the
// engine's snapshots.
package geo

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// nameProperties lists the property keys consulted for a feature's display
// name, in order. Boundary sources disagree on the key.
var nameProperties = []string{"name", "NAME", "nama", "KAB", "kecamatan", "kec", "NAME_2"}

// Feature is one boundary polygon with its display name.
type Feature struct {
	Name       string
	Geometry   geom.T
	Properties map[string]any
}

// Collection is the engine's view of a boundary FeatureCollection.
type Collection struct {
	Features []Feature
}

// ParseGeoJSON decodes a GeoJSON FeatureCollection. Features whose geometry
// is missing are kept (with nil geometry) so feature indices stay aligned
// with the source; classification and drawing skip them.
func ParseGeoJSON(data []byte) (*Collection, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "geo: decode feature collection")
	}

	c := &Collection{Features: make([]Feature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		c.Features = append(c.Features, Feature{
			Name:       DisplayName(f.Properties),
			Geometry:   f.Geometry,
			Properties: f.Properties,
		})
	}
	return c, nil
}

// MarshalGeoJSON encodes the collection back to GeoJSON bytes.
func MarshalGeoJSON(c *Collection) ([]byte, error) {
	fc := geojson.FeatureCollection{}
	for i := range c.Features {
		f := &c.Features[i]
		props := f.Properties
		if props == nil {
			props = map[string]any{"name": f.Name}
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   f.Geometry,
			Properties: props,
		})
	}
	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode feature collection")
	}
	return data, nil
}

// DisplayName picks a human-readable name out of a properties bag.
func DisplayName(props map[string]any) string {
	for _, key := range nameProperties {
		if v, ok := props[key]; ok && v != nil {
			if s := fmt.Sprintf("%v", v); s != "" {
				return s
			}
		}
	}
	return ""
}

// BBoxPolygon builds a single rectangular Polygon feature for a bounding
// box. Used as the last-resort boundary when every real source fails.
func BBoxPolygon(name string, b Bounds) *Collection {
	ring := []geom.Coord{
		{b.MinLon, b.MinLat},
		{b.MaxLon, b.MinLat},
		{b.MaxLon, b.MaxLat},
		{b.MinLon, b.MaxLat},
		{b.MinLon, b.MinLat},
	}
	poly := geom.NewPolygon(geom.XY)
	if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
		// A fixed 5-vertex rectangle cannot fail to set; keep the nil
		// geometry rather than panicking if it somehow does.
		return &Collection{Features: []Feature{{Name: name}}}
	}
	return &Collection{Features: []Feature{{
		Name:       name,
		Geometry:   poly,
		Properties: map[string]any{"name": name},
	}}}
}
