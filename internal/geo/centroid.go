package geo

import "github.com/twpayne/go-geom"

// Centroid returns the arithmetic mean of the feature's first outer ring
// vertices, in (lon, lat). This is a label anchor, not an area-weighted
// centroid; for the concave sub-district shapes involved it lands close
// enough and is cheap to recompute per frame. ok is false when the feature
// has no usable ring.
func (f Feature) Centroid() (lon, lat float64, ok bool) {
	var ring []geom.Coord
	switch g := f.Geometry.(type) {
	case *geom.Polygon:
		if g.NumLinearRings() > 0 {
			ring = ringCoords(g, 0)
		}
	case *geom.MultiPolygon:
		if g.NumPolygons() > 0 && g.Polygon(0).NumLinearRings() > 0 {
			ring = ringCoords(g.Polygon(0), 0)
		}
	}
	if len(ring) == 0 {
		return 0, 0, false
	}
	var sumX, sumY float64
	for _, c := range ring {
		sumX += c[0]
		sumY += c[1]
	}
	n := float64(len(ring))
	return sumX / n, sumY / n, true
}
