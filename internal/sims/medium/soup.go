package medium

import (
	"github.com/aquilax/go-perlin"

	"growth-medium/internal/core"
)

// Soup defaults.
const (
	DefaultSoupDensity = 0.35
	DefaultSoupScale   = 0.15
)

// SoupConfig controls random pattern generation.
type SoupConfig struct {
	Rows int
	Cols int
	// Density is the mean fraction of live cells.
	Density float64
	// Scale is the Perlin sampling step per cell; smaller values give larger
	// clumps.
	Scale float64
}

// Soup returns a rows*cols 0/1 pattern whose live cells cluster along a
// Perlin noise field. The same seed always yields the same pattern.
func Soup(cfg SoupConfig, seed int64) [][]uint8 {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultSoupScale
	}
	noise := perlin.NewPerlin(2, 2, 3, seed)
	rng := core.NewRNG(seed)
	out := make([][]uint8, cfg.Rows)
	for r := range out {
		out[r] = make([]uint8, cfg.Cols)
		for c := range out[r] {
			n := (noise.Noise2D(float64(c)*cfg.Scale, float64(r)*cfg.Scale) + 1) / 2
			p := cfg.Density * 2 * n
			if p > 1 {
				p = 1
			}
			if rng.Chance(p) {
				out[r][c] = 1
			}
		}
	}
	return out
}
