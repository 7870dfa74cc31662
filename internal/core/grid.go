package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Cells outside the grid do not exist; there is no wrapping.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether (x, y) lies inside the grid.
func (g *ByteGrid) Contains(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom overwrites g with the contents of src. Both grids must share
// dimensions.
func (g *ByteGrid) CopyFrom(src *ByteGrid) {
	copy(g.data, src.data)
}

// Clone returns an independent copy of the grid.
func (g *ByteGrid) Clone() *ByteGrid {
	out := &ByteGrid{W: g.W, H: g.H, data: make([]uint8, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Region copies the w*h rectangle whose top-left corner is (x, y) into a new
// row-major slice.
func (g *ByteGrid) Region(x, y, w, h int) []uint8 {
	out := make([]uint8, w*h)
	for row := 0; row < h; row++ {
		start := (y+row)*g.W + x
		copy(out[row*w:(row+1)*w], g.data[start:start+w])
	}
	return out
}
