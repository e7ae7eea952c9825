// Package render rasterizes the choropleth/point map into an RGBA canvas.
// All coordinate-to-pixel mapping flows through Projector.Project, which is
// the single source of truth shared by polygon fill, strokes, point dots,
// and label placement.
package render

import (
	"math"

	"github.com/bps-nganjuk/tagmap/internal/geo"
	"github.com/bps-nganjuk/tagmap/internal/viewport"
)

// canvasPad is the fixed margin, in pixels, around the projected bounds.
const canvasPad = 12.0

// Projector maps WGS84 coordinates to canvas pixels for one frame: a linear
// fit of the geographic bounds into the padded canvas rectangle with
// latitude inverted (north up), then the viewport zoom applied about the
// canvas center plus the pan offset.
type Projector struct {
	Bounds geo.Bounds
	View   viewport.State
	Width  float64
	Height float64
}

// Project converts a geographic coordinate to canvas pixels.
func (p Projector) Project(lat, lon float64) (x, y float64) {
	spanW := math.Max(1, p.Width-canvasPad*2)
	spanH := math.Max(1, p.Height-canvasPad*2)

	x = canvasPad + (lon-p.Bounds.MinLon)/p.Bounds.LonSpan()*spanW
	y = canvasPad + (p.Bounds.MaxLat-lat)/p.Bounds.LatSpan()*spanH

	cx, cy := p.Width/2, p.Height/2
	z := p.View.Zoom
	x = cx + (x-cx)*z + p.View.PanX
	y = cy + (y-cy)*z + p.View.PanY
	return x, y
}

// OnCanvas reports whether a projected pixel lies inside the canvas.
func (p Projector) OnCanvas(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= p.Width && y <= p.Height
}
