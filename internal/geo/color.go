package geo

import (
	"image/color"
	"math"
)

// Choropleth ramp endpoints and the neutral no-data fill.
var (
	rampLow  = color.RGBA{R: 254, G: 243, B: 199, A: 255} // pale amber
	rampHigh = color.RGBA{R: 220, G: 38, B: 38, A: 255}   // saturated red
	neutral  = color.RGBA{R: 243, G: 244, B: 246, A: 255} // gray, max == 0
)

// ColorFor maps a value onto the choropleth ramp as a linear interpolation
// at t = min(1, value/max). The mapping is monotonic and continuous in
// value; max <= 0 means there is no data anywhere and yields the neutral
// fill for every region.
func ColorFor(value, max float64) color.RGBA {
	if max <= 0 {
		return neutral
	}
	t := math.Min(1, value/max)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{
		R: lerp(rampLow.R, rampHigh.R),
		G: lerp(rampLow.G, rampHigh.G),
		B: lerp(rampLow.B, rampHigh.B),
		A: 255,
	}
}
