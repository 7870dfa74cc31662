package medium

import (
	"fmt"

	"growth-medium/internal/core"
)

// ViewportInfo summarises the viewport for a presentation layer. HPos and
// VPos place the viewport centre across the explorable range, 0.5 meaning
// centred.
type ViewportInfo struct {
	Zoom int
	Rows int
	Cols int
	HPos float64
	VPos float64
}

// Viewport is the visible window onto the overallocated buffer. Methods
// return updated copies; the receiver is never modified.
type Viewport struct {
	Zoom     int
	RowShift int
	ColShift int

	rows axis
	cols axis
}

// axis holds the per-dimension constants of the geometry.
type axis struct {
	min     int
	maxZoom int
}

func (a axis) total() int { return a.min * (a.maxZoom + 1) }
func (a axis) margin() int { return a.min / 2 }
func (a axis) span(zoom int) int { return a.min * zoom }
func (a axis) lo() int { return a.margin() }
func (a axis) hi(zoom int) int { return a.total() - a.margin() - a.span(zoom) }
func (a axis) centred(zoom int) int { return (a.maxZoom - zoom + 1) * a.min / 2 }

func (a axis) clamp(shift, zoom int) int {
	if hi := a.hi(zoom); shift > hi {
		shift = hi
	}
	if shift < a.lo() {
		shift = a.lo()
	}
	return shift
}

func (a axis) pos(shift, zoom int) float64 {
	centre := float64(shift) + float64(a.span(zoom))/2 - float64(a.min)/2
	return centre / float64(a.maxZoom*a.min)
}

// zoomIn keeps the window as centred as possible while it grows by one
// increment.
func (a axis) zoomIn(shift, zoom int) int {
	return a.clamp(shift-a.min/2, zoom+1)
}

func newViewport(cfg Config, zoom int) Viewport {
	v := Viewport{
		Zoom: zoom,
		rows: axis{min: cfg.MinRows, maxZoom: cfg.MaxZoom},
		cols: axis{min: cfg.MinCols, maxZoom: cfg.MaxZoom},
	}
	v.RowShift = v.rows.centred(zoom)
	v.ColShift = v.cols.centred(zoom)
	return v
}

// Rows is the number of visible rows.
func (v Viewport) Rows() int { return v.rows.span(v.Zoom) }

// Cols is the number of visible columns.
func (v Viewport) Cols() int { return v.cols.span(v.Zoom) }

// Contains reports whether viewport-relative (i, j) is visible.
func (v Viewport) Contains(i, j int) bool {
	return i >= 0 && i < v.Rows() && j >= 0 && j < v.Cols()
}

// Info reports the viewport dimensions and scroll fractions.
func (v Viewport) Info() ViewportInfo {
	return ViewportInfo{
		Zoom: v.Zoom,
		Rows: v.Rows(),
		Cols: v.Cols(),
		HPos: v.cols.pos(v.ColShift, v.Zoom),
		VPos: v.rows.pos(v.RowShift, v.Zoom),
	}
}

// ZoomIn enlarges the window by one zoom level.
func (v Viewport) ZoomIn() (Viewport, error) {
	if v.Zoom >= v.rows.maxZoom {
		return v, fmt.Errorf("medium: zoom %d is already the maximum: %w", v.Zoom, core.ErrOutOfRange)
	}
	v.RowShift = v.rows.zoomIn(v.RowShift, v.Zoom)
	v.ColShift = v.cols.zoomIn(v.ColShift, v.Zoom)
	v.Zoom++
	return v, nil
}

// ZoomOut shrinks the window by one zoom level around its centre.
func (v Viewport) ZoomOut() (Viewport, error) {
	if v.Zoom <= 1 {
		return v, fmt.Errorf("medium: zoom %d is already the minimum: %w", v.Zoom, core.ErrOutOfRange)
	}
	v.Zoom--
	v.RowShift += v.rows.min / 2
	v.ColShift += v.cols.min / 2
	return v, nil
}

// PanLeft moves the window one column towards the near edge.
func (v Viewport) PanLeft() Viewport {
	if v.ColShift > v.cols.lo() {
		v.ColShift--
	}
	return v
}

// PanRight moves the window one column towards the far edge.
func (v Viewport) PanRight() Viewport {
	if v.ColShift < v.cols.hi(v.Zoom) {
		v.ColShift++
	}
	return v
}

// PanUp moves the window one row towards the top of the buffer.
func (v Viewport) PanUp() Viewport {
	if v.RowShift > v.rows.lo() {
		v.RowShift--
	}
	return v
}

// PanDown moves the window one row towards the bottom of the buffer.
func (v Viewport) PanDown() Viewport {
	if v.RowShift < v.rows.hi(v.Zoom) {
		v.RowShift++
	}
	return v
}
