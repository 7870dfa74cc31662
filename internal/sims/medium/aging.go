package medium

import "sync"

// Cell states of the live buffer.
const (
	StateDead    uint8 = 0
	StateAlive   uint8 = 1
	StateAncient uint8 = 2
)

// decayMasks hold 1 everywhere except an edge band of the given margin. They
// depend only on buffer size, so engines of the same size class share them.
type decayMasks struct {
	thin  []uint8
	thick []uint8
}

type maskKey struct {
	w, h        int
	thin, thick int
}

var maskCache = struct {
	sync.Mutex
	m map[maskKey]*decayMasks
}{m: map[maskKey]*decayMasks{}}

func masksFor(cfg Config) *decayMasks {
	key := maskKey{w: cfg.TotalCols(), h: cfg.TotalRows(), thin: cfg.ThinMargin, thick: cfg.ThickMargin}
	maskCache.Lock()
	defer maskCache.Unlock()
	if m, ok := maskCache.m[key]; ok {
		return m
	}
	m := &decayMasks{
		thin:  edgeMask(key.w, key.h, key.thin),
		thick: edgeMask(key.w, key.h, key.thick),
	}
	maskCache.m[key] = m
	return m
}

func edgeMask(w, h, margin int) []uint8 {
	mask := make([]uint8, w*h)
	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			mask[y*w+x] = 1
		}
	}
	return mask
}

// agingTracker owns the lifetime buffer: consecutive generations each cell
// has been alive.
type agingTracker struct {
	threshold   int
	thinPeriod  int
	thickPeriod int
	lifetime    []int
	masks       *decayMasks
}

func newAgingTracker(cfg Config) *agingTracker {
	return &agingTracker{
		threshold:   cfg.AncientThreshold,
		thinPeriod:  cfg.ThinPeriod,
		thickPeriod: cfg.ThickPeriod,
		lifetime:    make([]int, cfg.TotalRows()*cfg.TotalCols()),
		masks:       masksFor(cfg),
	}
}

func (a *agingTracker) reset() {
	for i := range a.lifetime {
		a.lifetime[i] = 0
	}
}

// maskFor returns the decay mask applied at generation t, or nil when the
// lifetime buffer is left untouched.
func (a *agingTracker) maskFor(t int) []uint8 {
	switch {
	case t%a.thickPeriod == 0:
		return a.masks.thick
	case t%a.thinPeriod == 0:
		return a.masks.thin
	}
	return nil
}

// update ages every cell that survives into generation t and zeroes the rest.
func (a *agingTracker) update(nextAlive []uint8, t int) {
	mask := a.maskFor(t)
	for i, alive := range nextAlive {
		if alive == 0 || (mask != nil && mask[i] == 0) {
			a.lifetime[i] = 0
			continue
		}
		a.lifetime[i]++
	}
}

// paint derives display states from the lifetime buffer.
func (a *agingTracker) paint(state []uint8) {
	for i, life := range a.lifetime {
		switch {
		case life <= 0:
			state[i] = StateDead
		case life < a.threshold:
			state[i] = StateAlive
		default:
			state[i] = StateAncient
		}
	}
}
