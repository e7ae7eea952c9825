package geo

import (
	"github.com/twpayne/go-geom"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// pointInRing runs a crossing-number (ray-casting) test of (x, y) against a
// ring treated as a closed loop: the last vertex implicitly connects back to
// the first.
func pointInRing(x, y float64, ring []geom.Coord) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// polygonContains reports containment under the outer/hole rule: inside the
// outer ring (index 0) and not inside any hole ring (index >= 1).
func polygonContains(lon, lat float64, poly *geom.Polygon) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}
	if !pointInRing(lon, lat, ringCoords(poly, 0)) {
		return false
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		if pointInRing(lon, lat, ringCoords(poly, i)) {
			return false
		}
	}
	return true
}

// Contains reports whether a feature's geometry contains the coordinate.
// A MultiPolygon contains the point when any constituent polygon does.
func (f Feature) Contains(lon, lat float64) bool {
	switch g := f.Geometry.(type) {
	case *geom.Polygon:
		return polygonContains(lon, lat, g)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if polygonContains(lon, lat, g.Polygon(i)) {
				return true
			}
		}
	}
	return false
}

// CountByFeature classifies points into boundary features. Each point is
// attributed to at most one feature: the first, in feature order, that
// contains it. The returned slice is index-aligned with c.Features.
func CountByFeature(c *Collection, points []rowset.Point) []int {
	if c == nil {
		return nil
	}
	counts := make([]int, len(c.Features))
	for _, p := range points {
		for i, f := range c.Features {
			if f.Geometry == nil {
				continue
			}
			if f.Contains(p.Lon, p.Lat) {
				counts[i]++
				break
			}
		}
	}
	return counts
}
