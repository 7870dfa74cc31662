package medium

// NeighborCounter computes, for every cell of a w*h grid, how many of its
// eight Moore neighbours are alive. Positions outside the grid count as dead.
// alive holds 0/1 values; counts receives values in [0, 8]. Both slices are
// row-major with length w*h.
type NeighborCounter interface {
	CountNeighbors(alive, counts []uint8)
}

var counters = map[string]func(w, h int) NeighborCounter{
	CounterDirect: func(w, h int) NeighborCounter { return NewDirectCounter(w, h) },
	CounterFFT:    func(w, h int) NeighborCounter { return NewFFTCounter(w, h) },
}

// DirectCounter counts neighbours by visiting each live cell and bumping its
// in-bounds neighbours.
type DirectCounter struct {
	w, h int
}

// NewDirectCounter returns a counter for a w*h grid.
func NewDirectCounter(w, h int) *DirectCounter {
	return &DirectCounter{w: w, h: h}
}

// CountNeighbors implements NeighborCounter.
func (c *DirectCounter) CountNeighbors(alive, counts []uint8) {
	w, h := c.w, c.h
	for i := range counts {
		counts[i] = 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if alive[y*w+x] == 0 {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					counts[ny*w+nx]++
				}
			}
		}
	}
}
