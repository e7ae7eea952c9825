// Package engine is the facade over resolution, aggregation, geometry and
// rendering. It owns the current inputs, recomputes derived state as a
// whole pass whenever an input changes, and serves read access to the
// results. All methods are safe for concurrent use.
package engine

import (
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
	"github.com/bps-nganjuk/tagmap/internal/geo"
	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/render"
	"github.com/bps-nganjuk/tagmap/internal/resolve"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
	"github.com/bps-nganjuk/tagmap/internal/viewport"
)

// Options configures a new Engine.
type Options struct {
	Profile        resolve.DistrictProfile
	FallbackBounds geo.Bounds
	CanvasWidth    int
	CanvasHeight   int
}

// Engine holds the inputs and the derived state of one session.
type Engine struct {
	mu sync.Mutex

	opts Options
	log  *zap.Logger

	rows       []rowset.Row
	registry   *registry.Registry
	workload   *registry.WorkloadIndex
	collection *geo.Collection
	filter     string

	viewport *viewport.Viewport

	// derived, rebuilt by recompute
	result  aggregate.Result
	bounds  geo.Bounds
	counts  []int
	summary aggregate.Stats
}

// New creates an Engine with no data loaded. The registry and rows are
// supplied afterwards; until then every read returns empty results.
func New(opts Options) *Engine {
	if opts.CanvasWidth <= 0 {
		opts.CanvasWidth = 960
	}
	if opts.CanvasHeight <= 0 {
		opts.CanvasHeight = 640
	}
	e := &Engine{
		opts:     opts,
		log:      zap.L().With(zap.String("component", "engine")),
		registry: registry.Load(nil),
		viewport: viewport.New(),
		bounds:   opts.FallbackBounds,
	}
	e.workload = registry.BuildWorkloadIndex(e.registry)
	return e
}

// SetRows replaces the tagging row set and recomputes.
func (e *Engine) SetRows(rows []rowset.Row) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = rows
	e.recompute()
}

// SetRegistry replaces the authoritative registry and recomputes. The
// workload index is rebuilt from the registry's own records.
func (e *Engine) SetRegistry(reg *registry.Registry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry = reg
	e.workload = registry.BuildWorkloadIndex(reg)
	e.recompute()
}

// SetWorkload replaces the workload index with one built from a separate
// muatan table and recomputes.
func (e *Engine) SetWorkload(idx *registry.WorkloadIndex) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workload = idx
	e.recompute()
}

// SetFilter sets the case-insensitive village name filter applied to
// ranked output. It does not affect aggregation itself.
func (e *Engine) SetFilter(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = text
}

// OnBoundaryAvailable installs the resolved boundary collection and
// recomputes geographic bounds and per-feature classification.
func (e *Engine) OnBoundaryAvailable(c *geo.Collection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collection = c
	e.recompute()
}

// OnBoundaryUnavailable clears the boundary layer. Points still render
// against the fallback bounds.
func (e *Engine) OnBoundaryUnavailable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collection = nil
	e.recompute()
}

// recompute rebuilds all derived state. Callers hold e.mu.
func (e *Engine) recompute() {
	e.result = aggregate.Run(e.rows, e.registry, e.workload, e.opts.Profile)
	e.summary = aggregate.Summarize(e.result)
	e.bounds = geo.ComputeBounds(e.collection, e.result.Points, e.opts.FallbackBounds)
	if e.collection != nil {
		e.counts = geo.CountByFeature(e.collection, e.result.Points)
	} else {
		e.counts = nil
	}

	e.log.Debug("recomputed",
		zap.Int("rows", len(e.rows)),
		zap.Int("filtered_rows", e.result.TotalRows),
		zap.Int("villages", len(e.result.Records)),
		zap.Int("points", len(e.result.Points)),
	)
}

// Result returns a copy of the last aggregation pass.
func (e *Engine) Result() aggregate.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Summary returns the headline statistics of the last pass.
func (e *Engine) Summary() aggregate.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary
}

// Ranked returns the filtered, ranked village table.
func (e *Engine) Ranked(order aggregate.Order) []aggregate.RankedRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := aggregate.Filter(e.result.Records, e.filter)
	return aggregate.Rank(records, order)
}

// ZeroCount returns registry villages with no tagged rows.
func (e *Engine) ZeroCount() []aggregate.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return aggregate.ZeroCount(e.result, e.registry)
}

// Classification returns the per-feature point counts aligned with the
// boundary collection's feature order, or nil without a boundary.
func (e *Engine) Classification() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]int, len(e.counts))
	copy(out, e.counts)
	return out
}

// Boundary returns the current boundary collection, which may be nil.
func (e *Engine) Boundary() *geo.Collection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collection
}

// Viewport exposes the pan/zoom controller. The controller itself is not
// synchronized; concurrent renderers should pass their own state to
// RenderFrameAt instead of mutating it.
func (e *Engine) Viewport() *viewport.Viewport {
	return e.viewport
}

// RenderFrame draws the current frame using the engine's own viewport.
// Successive calls with unchanged inputs and viewport produce identical
// images.
func (e *Engine) RenderFrame(opts render.Options) *image.RGBA {
	return e.RenderFrameAt(e.viewport.State(), opts)
}

// RenderFrameAt draws a frame at an explicit viewport state, leaving the
// engine's viewport untouched. Frames are a pure function of the computed
// data and the given state, so concurrent callers do not interfere.
func (e *Engine) RenderFrameAt(view viewport.State, opts render.Options) *image.RGBA {
	e.mu.Lock()
	defer e.mu.Unlock()

	dst := image.NewRGBA(image.Rect(0, 0, e.opts.CanvasWidth, e.opts.CanvasHeight))
	proj := render.Projector{
		Bounds: e.bounds,
		View:   view,
		Width:  float64(e.opts.CanvasWidth),
		Height: float64(e.opts.CanvasHeight),
	}
	render.Frame(dst, e.collection, e.counts, e.result.Points, proj, opts)
	return dst
}
