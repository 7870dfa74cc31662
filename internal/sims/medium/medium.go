package medium

import (
	"fmt"
	"strconv"

	"growth-medium/internal/core"
)

// Engine runs Conway's rules with cell aging on a large bounded buffer that
// stands in for an unbounded plane, and exposes a movable window onto it.
//
// The engine keeps two grids: the configuration (generation 0, the only
// state that is ever persisted or hand-edited) and the live buffer evolved
// by Advance. Engines are not safe for concurrent use.
type Engine struct {
	cfg  Config
	name string
	w, h int

	config *core.ByteGrid
	cur    *core.ByteGrid
	prev   *core.ByteGrid

	alive   []uint8
	counts  []uint8
	aging   *agingTracker
	counter NeighborCounter

	view Viewport
	// density is the live fraction of soups drawn by Reset.
	density float64

	started bool
	gen     int
	extinct bool
	steady  bool
}

// New returns an engine with an empty configuration at the given zoom.
func New(cfg Config, zoom int) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if zoom < 1 {
		zoom = 1
	}
	if zoom > cfg.MaxZoom {
		return nil, fmt.Errorf("medium: zoom %d exceeds max zoom %d: %w", zoom, cfg.MaxZoom, core.ErrTooLarge)
	}
	return newEngine(cfg, newViewport(cfg, zoom)), nil
}

// FromPattern builds an engine whose configuration is pattern centred in the
// viewport. The zoom is the smallest level at least minZoom that fits the
// pattern. pattern must be a non-empty rectangle of 0/1 values.
func FromPattern(cfg Config, pattern [][]uint8, minZoom int) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows, cols, err := patternSize(pattern)
	if err != nil {
		return nil, err
	}
	zoom := max(minZoom, 1, ceilDiv(rows, cfg.MinRows), ceilDiv(cols, cfg.MinCols))
	if zoom > cfg.MaxZoom {
		return nil, fmt.Errorf("medium: %dx%d pattern needs zoom %d, max is %d: %w", rows, cols, zoom, cfg.MaxZoom, core.ErrTooLarge)
	}

	e := newEngine(cfg, newViewport(cfg, zoom))
	top := e.view.RowShift + (e.view.Rows()-rows)/2
	left := e.view.ColShift + (e.view.Cols()-cols)/2
	for r, line := range pattern {
		for c, v := range line {
			e.config.Set(left+c, top+r, v)
		}
	}
	return e, nil
}

func newEngine(cfg Config, view Viewport) *Engine {
	w, h := cfg.TotalCols(), cfg.TotalRows()
	name := "medium"
	if cfg.Counter != CounterDirect {
		name += "-" + cfg.Counter
	}
	return &Engine{
		cfg:     cfg,
		name:    name,
		w:       w,
		h:       h,
		config:  core.NewByteGrid(w, h),
		cur:     core.NewByteGrid(w, h),
		prev:    core.NewByteGrid(w, h),
		alive:   make([]uint8, w*h),
		counts:  make([]uint8, w*h),
		aging:   newAgingTracker(cfg),
		counter: counters[cfg.Counter](w, h),
		view:    view,
		density: DefaultSoupDensity,
	}
}

func patternSize(pattern [][]uint8) (int, int, error) {
	rows := len(pattern)
	if rows == 0 || len(pattern[0]) == 0 {
		return 0, 0, fmt.Errorf("medium: pattern has no rows or columns: %w", core.ErrInvalidInput)
	}
	cols := len(pattern[0])
	for r, line := range pattern {
		if len(line) != cols {
			return 0, 0, fmt.Errorf("medium: pattern row %d has %d cells, want %d: %w", r, len(line), cols, core.ErrInvalidInput)
		}
		for c, v := range line {
			if v > 1 {
				return 0, 0, fmt.Errorf("medium: pattern cell (%d,%d) is %d, want 0 or 1: %w", r, c, v, core.ErrInvalidInput)
			}
		}
	}
	return rows, cols, nil
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// Advance computes generation t and returns whether the visible plane went
// extinct or stopped changing, along with a copy of the viewport. t == 0
// restarts from the configuration. Advancing an engine that was never
// started implicitly restarts it first.
func (e *Engine) Advance(t int) (extinction, steady bool, window []uint8, err error) {
	if t < 0 {
		return false, false, nil, fmt.Errorf("medium: generation %d is negative: %w", t, core.ErrInvalidInput)
	}
	if t == 0 || !e.started {
		e.restart()
	}
	if t > 0 {
		e.step(t)
	}
	return e.extinct, e.steady, e.Window(), nil
}

func (e *Engine) restart() {
	e.cur.CopyFrom(e.config)
	e.prev.CopyFrom(e.config)
	e.aging.reset()
	e.started = true
	e.gen = 0
	e.steady = false
	e.extinct = e.regionEmpty()
}

func (e *Engine) step(t int) {
	e.prev.CopyFrom(e.cur)

	cells := e.cur.Cells()
	for i, v := range cells {
		e.alive[i] = boolByte(v > 0)
	}
	e.counter.CountNeighbors(e.alive, e.counts)
	for i, n := range e.counts {
		e.alive[i] = boolByte(n == 3 || (n == 2 && e.alive[i] == 1))
	}

	e.aging.update(e.alive, t)
	e.aging.paint(cells)

	e.gen = t
	e.steady = false
	e.extinct = e.regionEmpty()
	if !e.extinct && e.regionUnchanged() {
		e.steady = true
		for i, v := range cells {
			if v > 0 {
				cells[i] = StateAncient
			}
		}
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// regionEmpty reports whether no live cell remains outside the hidden margin.
func (e *Engine) regionEmpty() bool {
	hr, hc := e.cfg.HiddenRows(), e.cfg.HiddenCols()
	for y := hr; y < e.h-hr; y++ {
		for x := hc; x < e.w-hc; x++ {
			if e.cur.At(x, y) != 0 {
				return false
			}
		}
	}
	return true
}

// regionUnchanged compares the area outside the hidden margin with the
// previous generation.
func (e *Engine) regionUnchanged() bool {
	hr, hc := e.cfg.HiddenRows(), e.cfg.HiddenCols()
	for y := hr; y < e.h-hr; y++ {
		for x := hc; x < e.w-hc; x++ {
			if e.cur.At(x, y) != e.prev.At(x, y) {
				return false
			}
		}
	}
	return true
}

// ToggleCell flips configuration cell (i, j), counted in rows and columns
// from the top-left of the viewport, and returns the configuration window.
//
// Toggling edits generation 0 only. Callers must not toggle while an
// evolution is in progress; fork the engine and edit the fork instead.
func (e *Engine) ToggleCell(i, j int) ([]uint8, error) {
	if !e.view.Contains(i, j) {
		return nil, fmt.Errorf("medium: cell (%d,%d) outside %dx%d viewport: %w", i, j, e.view.Rows(), e.view.Cols(), core.ErrOutOfRange)
	}
	x, y := e.view.ColShift+j, e.view.RowShift+i
	v := e.config.At(x, y) ^ 1
	e.config.Set(x, y, v)
	if e.started && e.gen == 0 {
		e.cur.Set(x, y, v)
	}
	return e.config.Region(e.view.ColShift, e.view.RowShift, e.view.Cols(), e.view.Rows()), nil
}

// Fork returns a new, unstarted engine whose configuration is the current
// live plane with ancient cells collapsed to plain alive ones. The viewport
// is copied; lifetime history is not.
func (e *Engine) Fork() *Engine {
	f := newEngine(e.cfg, e.view)
	src := e.config
	if e.started {
		src = e.cur
	}
	dst := f.config.Cells()
	for i, v := range src.Cells() {
		dst[i] = boolByte(v > 0)
	}
	return f
}

// ZoomIn enlarges the viewport by one zoom level.
func (e *Engine) ZoomIn() (ViewportInfo, error) {
	v, err := e.view.ZoomIn()
	if err != nil {
		return e.view.Info(), err
	}
	e.view = v
	return v.Info(), nil
}

// ZoomOut shrinks the viewport by one zoom level.
func (e *Engine) ZoomOut() (ViewportInfo, error) {
	v, err := e.view.ZoomOut()
	if err != nil {
		return e.view.Info(), err
	}
	e.view = v
	return v.Info(), nil
}

// PanLeft moves the viewport one column left; a no-op at the bound.
func (e *Engine) PanLeft() ViewportInfo {
	e.view = e.view.PanLeft()
	return e.view.Info()
}

// PanRight moves the viewport one column right; a no-op at the bound.
func (e *Engine) PanRight() ViewportInfo {
	e.view = e.view.PanRight()
	return e.view.Info()
}

// PanUp moves the viewport one row up; a no-op at the bound.
func (e *Engine) PanUp() ViewportInfo {
	e.view = e.view.PanUp()
	return e.view.Info()
}

// PanDown moves the viewport one row down; a no-op at the bound.
func (e *Engine) PanDown() ViewportInfo {
	e.view = e.view.PanDown()
	return e.view.Info()
}

// source is the grid currently shown: the live buffer once started, the
// configuration before that.
func (e *Engine) source() *core.ByteGrid {
	if e.started {
		return e.cur
	}
	return e.config
}

// Window returns a row-major copy of the visible cells.
func (e *Engine) Window() []uint8 {
	return e.source().Region(e.view.ColShift, e.view.RowShift, e.view.Cols(), e.view.Rows())
}

// Pattern returns the tightest 0/1 rectangle holding every live cell inside
// the viewport.
func (e *Engine) Pattern() ([][]uint8, error) {
	src := e.source()
	top, left := e.view.RowShift, e.view.ColShift
	minR, minC, maxR, maxC := -1, -1, -1, -1
	for i := 0; i < e.view.Rows(); i++ {
		for j := 0; j < e.view.Cols(); j++ {
			if src.At(left+j, top+i) == 0 {
				continue
			}
			if minR < 0 {
				minR, maxR, minC, maxC = i, i, j, j
				continue
			}
			minR, maxR = min(minR, i), max(maxR, i)
			minC, maxC = min(minC, j), max(maxC, j)
		}
	}
	if minR < 0 {
		return nil, fmt.Errorf("medium: no live cells in the viewport: %w", core.ErrEmptyState)
	}
	out := make([][]uint8, maxR-minR+1)
	for r := range out {
		out[r] = make([]uint8, maxC-minC+1)
		for c := range out[r] {
			out[r][c] = boolByte(src.At(left+minC+c, top+minR+r) > 0)
		}
	}
	return out, nil
}

// Population counts live cells in the viewport.
func (e *Engine) Population() int {
	n := 0
	for _, v := range e.Window() {
		if v > 0 {
			n++
		}
	}
	return n
}

// Generation returns the last generation computed by Advance.
func (e *Engine) Generation() int { return e.gen }

// Started reports whether Advance has run since construction.
func (e *Engine) Started() bool { return e.started }

// Halted reports whether the last generation went extinct or steady.
func (e *Engine) Halted() bool { return e.started && (e.extinct || e.steady) }

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport { return e.view }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Name returns the simulation identifier.
func (e *Engine) Name() string { return e.name }

// Size reports the viewport dimensions.
func (e *Engine) Size() core.Size {
	return core.Size{W: e.view.Cols(), H: e.view.Rows()}
}

// Cells exposes the visible window.
func (e *Engine) Cells() []uint8 { return e.Window() }

// Reset replaces the configuration with a random soup filling the viewport
// and restarts at generation 0.
func (e *Engine) Reset(seed int64) {
	soup := Soup(SoupConfig{Rows: e.view.Rows(), Cols: e.view.Cols(), Density: e.density, Scale: DefaultSoupScale}, seed)
	e.config.Clear()
	for r, line := range soup {
		for c, v := range line {
			e.config.Set(e.view.ColShift+c, e.view.RowShift+r, v)
		}
	}
	e.restart()
}

// Step advances by one generation unless the run has halted.
func (e *Engine) Step() {
	if e.Halted() {
		return
	}
	if !e.started {
		e.restart()
	}
	e.step(e.gen + 1)
}

// Parameters reports configuration, viewport and run state.
func (e *Engine) Parameters() core.ParameterSnapshot {
	info := e.view.Info()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		e.cfg.Parameters(),
		{
			Name: "Viewport",
			Params: []core.Parameter{
				core.IntParam("zoom", "Zoom", info.Zoom),
				core.IntParam("rows", "Rows", info.Rows),
				core.IntParam("cols", "Cols", info.Cols),
				core.FloatParam("hpos", "H pos", info.HPos),
				core.FloatParam("vpos", "V pos", info.VPos),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", e.gen),
				core.IntParam("population", "Population", e.Population()),
				core.BoolParam("extinct", "Extinct", e.extinct),
				core.BoolParam("steady", "Steady", e.steady),
			},
		},
	}}
}

func init() {
	register := func(name, counter string) {
		core.Register(name, func(m map[string]string) core.Sim {
			c := FromMap(m)
			c.Counter = counter
			if err := c.Validate(); err != nil {
				c = DefaultConfig()
				c.Counter = counter
			}
			zoom := 1
			if v, ok := m["zoom"]; ok {
				if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= c.MaxZoom {
					zoom = parsed
				}
			}
			e := newEngine(c, newViewport(c, zoom))
			if v, ok := m["density"]; ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
					e.density = parsed
				}
			}
			return e
		})
	}
	register("medium", CounterDirect)
	register("medium-fft", CounterFFT)
}
