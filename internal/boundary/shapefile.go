package boundary

import (
	"context"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

// Shapefile loads boundary polygons from a local ESRI shapefile, the
// format BPS publishes its wilkerstat boundary extracts in.
type Shapefile struct {
	Path string
}

func (s *Shapefile) Name() string { return "shapefile:" + s.Path }

func (s *Shapefile) Fetch(_ context.Context) (*geo.Collection, error) {
	reader, err := shp.Open(s.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", s.Path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	col := &geo.Collection{}
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		props := make(map[string]any, len(fields))
		for i, f := range fields {
			name := strings.TrimRight(f.String(), "\x00")
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val != "" {
				props[name] = val
			}
		}

		g, ok := shapeToGeom(shape)
		if !ok {
			skipped++
			continue
		}

		col.Features = append(col.Features, geo.Feature{
			Name:       geo.DisplayName(props),
			Geometry:   g,
			Properties: props,
		})
	}

	if skipped > 0 {
		zap.L().Debug("skipped non-polygon shapefile records",
			zap.String("path", s.Path),
			zap.Int("skipped", skipped),
		)
	}
	return col, nil
}

// shapeToGeom converts a shp polygon into a geom.Polygon, splitting its
// part index into rings. Non-polygon shapes are skipped.
func shapeToGeom(shape shp.Shape) (geom.T, bool) {
	poly, ok := shape.(*shp.Polygon)
	if !ok {
		return nil, false
	}
	if len(poly.Points) == 0 {
		return nil, false
	}

	parts := make([]int32, 0, len(poly.Parts)+1)
	parts = append(parts, poly.Parts...)
	parts = append(parts, poly.NumPoints)

	out := geom.NewPolygon(geom.XY)
	for p := 0; p+1 < len(parts); p++ {
		start, end := parts[p], parts[p+1]
		if end <= start {
			continue
		}
		ring := make([]geom.Coord, 0, end-start+1)
		for i := start; i < end; i++ {
			pt := poly.Points[i]
			ring = append(ring, geom.Coord{pt.X, pt.Y})
		}
		ring = closeRing(ring)
		_ = out.Push(geom.NewLinearRing(geom.XY).MustSetCoords(ring))
	}
	if out.NumLinearRings() == 0 {
		return nil, false
	}
	return out, true
}
