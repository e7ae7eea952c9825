package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/twpayne/go-geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/bps-nganjuk/tagmap/internal/geo"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

const (
	fillAlpha   = 204 // polygon fill at 0.8 opacity
	strokeAlpha = 153 // polygon outline at 0.6 opacity
	dotAlpha    = 217 // point dots at 0.85 opacity
	dotRadius   = 2.2
	legendSteps = 5
)

var (
	background  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	strokeGray  = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	inkDark     = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	haloWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 230}
	legendPanel = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// Options toggles the optional layers of a frame.
type Options struct {
	ShowLabels bool
	ShowLegend bool
}

// Frame draws one complete choropleth/point frame onto dst. Drawing order
// is background, filled polygons with outlines, point dots, labels, legend.
// Given identical inputs the output image is identical; Frame holds no
// state between calls.
func Frame(dst *image.RGBA, c *geo.Collection, counts []int, points []rowset.Point, proj Projector, opts Options) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	if c != nil {
		for i, f := range c.Features {
			if f.Geometry == nil {
				continue
			}
			n := 0
			if i < len(counts) {
				n = counts[i]
			}
			fill := geo.ColorFor(float64(n), float64(maxCount))
			fillFeature(dst, f, proj, withAlpha(fill, fillAlpha))
			strokeFeature(dst, f, proj, withAlpha(strokeGray, strokeAlpha))
		}
	}

	for _, p := range points {
		x, y := proj.Project(p.Lat, p.Lon)
		fillCircle(dst, x, y, dotRadius, withAlpha(inkDark, dotAlpha))
	}

	if opts.ShowLabels && c != nil {
		drawLabels(dst, c, proj)
	}
	if opts.ShowLegend {
		drawLegend(dst, maxCount)
	}
}

func withAlpha(col color.RGBA, a uint8) color.RGBA {
	col.A = a
	return col
}

// uniformFor wraps a straight-alpha color for the draw package, which
// expects premultiplied sources. Going through NRGBA keeps channels from
// exceeding alpha and wrapping during Over compositing.
func uniformFor(col color.RGBA) *image.Uniform {
	return image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
}

// featureRings yields every ring of a Polygon or MultiPolygon feature.
func featureRings(f geo.Feature) [][]geom.Coord {
	var rings [][]geom.Coord
	switch g := f.Geometry.(type) {
	case *geom.Polygon:
		for i := 0; i < g.NumLinearRings(); i++ {
			rings = append(rings, g.LinearRing(i).Coords())
		}
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			poly := g.Polygon(i)
			for j := 0; j < poly.NumLinearRings(); j++ {
				rings = append(rings, poly.LinearRing(j).Coords())
			}
		}
	}
	return rings
}

func fillFeature(dst *image.RGBA, f geo.Feature, proj Projector, fill color.RGBA) {
	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over

	drew := false
	for _, ring := range featureRings(f) {
		for j, c := range ring {
			x, y := proj.Project(c[1], c[0])
			if j == 0 {
				r.MoveTo(float32(x), float32(y))
			} else {
				r.LineTo(float32(x), float32(y))
			}
		}
		if len(ring) > 0 {
			r.ClosePath()
			drew = true
		}
	}
	if drew {
		r.Draw(dst, bounds, uniformFor(fill), image.Point{})
	}
}

func strokeFeature(dst *image.RGBA, f geo.Feature, proj Projector, stroke color.RGBA) {
	for _, ring := range featureRings(f) {
		for j := 0; j < len(ring); j++ {
			x0, y0 := proj.Project(ring[j][1], ring[j][0])
			next := ring[(j+1)%len(ring)]
			x1, y1 := proj.Project(next[1], next[0])
			drawLine(dst, x0, y0, x1, y1, stroke)
		}
	}
}

// drawLine blends a 1px segment using DDA stepping. The renderer's polygon
// outlines are thin and short; a rasterized stroke path is not worth it.
func drawLine(dst *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		blendPixel(dst, int(math.Round(x0)), int(math.Round(y0)), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		blendPixel(dst, int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)), col)
	}
}

func fillCircle(dst *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	r := int(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				blendPixel(dst, int(math.Round(cx))+dx, int(math.Round(cy))+dy, col)
			}
		}
	}
}

// blendPixel source-over composites a straight-alpha color onto one pixel.
func blendPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	if !image.Pt(x, y).In(dst.Bounds()) {
		return
	}
	existing := dst.RGBAAt(x, y)
	a := float64(col.A) / 255
	mix := func(src, bg uint8) uint8 {
		return uint8(math.Round(float64(src)*a + float64(bg)*(1-a)))
	}
	dst.SetRGBA(x, y, color.RGBA{
		R: mix(col.R, existing.R),
		G: mix(col.G, existing.G),
		B: mix(col.B, existing.B),
		A: 255,
	})
}

func drawLabels(dst *image.RGBA, c *geo.Collection, proj Projector) {
	for _, f := range c.Features {
		if f.Name == "" {
			continue
		}
		lon, lat, ok := f.Centroid()
		if !ok {
			continue
		}
		x, y := proj.Project(lat, lon)
		// Off-screen labels are skipped outright, not clipped.
		if !proj.OnCanvas(x, y) {
			continue
		}
		drawText(dst, int(x)+4, int(y), f.Name, inkDark, true)
	}
}

func drawLegend(dst *image.RGBA, maxCount int) {
	const legendX, legendY = 12, 12
	panel := image.Rect(legendX-8, legendY-8, legendX+132, legendY+82)
	fillRect(dst, panel, legendPanel)

	drawText(dst, legendX, legendY+8, "Choropleth (per kecamatan)", inkDark, false)
	for s := 0; s <= legendSteps; s++ {
		t := float64(s) / legendSteps
		val := int(math.Round(float64(maxCount) * t))
		swatch := geo.ColorFor(float64(val), float64(maxCount))
		boxY := legendY + 18 + s*14
		fillRect(dst, image.Rect(legendX, boxY, legendX+14, boxY+10), swatch)
		drawText(dst, legendX+20, boxY+9, fmt.Sprintf("%d", val), inkDark, false)
	}
}

func fillRect(dst *image.RGBA, rect image.Rectangle, col color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			blendPixel(dst, x, y, col)
		}
	}
}

// drawText renders a label with the fixed 7x13 face; halo approximates the
// canvas strokeText outline so labels stay readable over dark fills.
func drawText(dst *image.RGBA, x, y int, text string, col color.RGBA, halo bool) {
	if halo {
		for _, off := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			d := font.Drawer{
				Dst:  dst,
				Src:  uniformFor(haloWhite),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x+off[0], y+off[1]),
			}
			d.DrawString(text)
		}
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
