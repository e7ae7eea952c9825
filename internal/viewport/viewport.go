// Package viewport owns the pan/zoom state that drives the map projection.
// Transitions mirror pointer gestures: wheel zoom anchored at the pointer,
// click-drag panning, stepped zoom buttons, and reset. Zoom is always held
// inside [MinZoom, MaxZoom]; pan is unbounded.
package viewport

import "math"

// Zoom limits and the stepped-button factor.
const (
	MinZoom    = 0.5
	MaxZoom    = 8.0
	StepFactor = 1.3
)

// State is the read side of the viewport, consumed by the projector.
type State struct {
	Zoom float64
	PanX float64
	PanY float64
}

// Viewport tracks pan/zoom plus in-flight drag bookkeeping.
type Viewport struct {
	state    State
	dragging bool
	lastX    float64
	lastY    float64
}

// New returns a viewport at identity: zoom 1, no pan.
func New() *Viewport {
	return &Viewport{state: State{Zoom: 1}}
}

// State returns the current pan/zoom snapshot.
func (v *Viewport) State() State { return v.state }

// Reset restores identity zoom and pan.
func (v *Viewport) Reset() {
	v.state = State{Zoom: 1}
}

// Wheel applies a scroll step at pointer position (mouseX, mouseY) on a
// canvas of the given size. Scrolling away (positive delta) shrinks zoom by
// 0.9, toward by 1.1, clamped and rounded to 3 decimals; pan shifts so the
// geography under the pointer stays put.
func (v *Viewport) Wheel(deltaY, mouseX, mouseY, width, height float64) {
	factor := 1.1
	if deltaY > 0 {
		factor = 0.9
	}
	oldZoom := v.state.Zoom
	newZoom := clamp(round3(oldZoom*factor), MinZoom, MaxZoom)

	cx, cy := width/2, height/2
	ratio := newZoom/oldZoom - 1
	v.state.PanX -= (mouseX - cx) * ratio
	v.state.PanY -= (mouseY - cy) * ratio
	v.state.Zoom = newZoom
}

// ZoomIn steps zoom up by the fixed button factor, about the canvas center.
func (v *Viewport) ZoomIn() {
	v.state.Zoom = clamp(round2(v.state.Zoom*StepFactor), MinZoom, MaxZoom)
}

// ZoomOut steps zoom down by the fixed button factor.
func (v *Viewport) ZoomOut() {
	v.state.Zoom = clamp(round2(v.state.Zoom/StepFactor), MinZoom, MaxZoom)
}

// PointerDown begins a drag at the given position.
func (v *Viewport) PointerDown(x, y float64) {
	v.dragging = true
	v.lastX, v.lastY = x, y
}

// PointerMove accumulates the pointer delta into pan while dragging; it is
// a no-op otherwise.
func (v *Viewport) PointerMove(x, y float64) {
	if !v.dragging {
		return
	}
	v.state.PanX += x - v.lastX
	v.state.PanY += y - v.lastY
	v.lastX, v.lastY = x, y
}

// PointerUp ends the drag. Also called on loss of pointer capture.
func (v *Viewport) PointerUp() {
	v.dragging = false
}

// Dragging reports whether a drag is in flight.
func (v *Viewport) Dragging() bool { return v.dragging }

// ClampZoom bounds an externally supplied zoom level to the valid range.
func ClampZoom(z float64) float64 {
	return clamp(z, MinZoom, MaxZoom)
}

func clamp(z, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, z))
}

func round3(z float64) float64 { return math.Round(z*1000) / 1000 }

func round2(z float64) float64 { return math.Round(z*100) / 100 }
