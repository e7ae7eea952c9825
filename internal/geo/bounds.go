package geo

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// degeneratePad widens a zero-extent axis so projection never divides by a
// zero span.
const degeneratePad = 0.05

// Bounds is a geographic bounding box in WGS84 degrees.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// LatSpan returns the latitude extent.
func (b Bounds) LatSpan() float64 { return b.MaxLat - b.MinLat }

// LonSpan returns the longitude extent.
func (b Bounds) LonSpan() float64 { return b.MaxLon - b.MinLon }

// ComputeBounds scans every vertex of every boundary feature and every point
// and returns the enclosing box. With no coordinates at all it returns the
// fallback box; a degenerate axis (min == max) is padded on both sides.
func ComputeBounds(c *Collection, points []rowset.Point, fallback Bounds) Bounds {
	b := Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
	extend := func(lat, lon float64) {
		b.MinLat = math.Min(b.MinLat, lat)
		b.MaxLat = math.Max(b.MaxLat, lat)
		b.MinLon = math.Min(b.MinLon, lon)
		b.MaxLon = math.Max(b.MaxLon, lon)
	}

	if c != nil {
		for _, f := range c.Features {
			if f.Geometry == nil {
				continue
			}
			flat := f.Geometry.FlatCoords()
			stride := f.Geometry.Stride()
			for i := 0; i+1 < len(flat); i += stride {
				extend(flat[i+1], flat[i]) // GeoJSON order is lon, lat
			}
		}
	}
	for _, p := range points {
		extend(p.Lat, p.Lon)
	}

	if math.IsInf(b.MinLat, 1) {
		return fallback
	}
	if b.MinLat == b.MaxLat {
		b.MinLat -= degeneratePad
		b.MaxLat += degeneratePad
	}
	if b.MinLon == b.MaxLon {
		b.MinLon -= degeneratePad
		b.MaxLon += degeneratePad
	}
	return b
}

// ringCoords returns the coordinate sequence of ring i of a polygon.
func ringCoords(poly *geom.Polygon, i int) []geom.Coord {
	return poly.LinearRing(i).Coords()
}
