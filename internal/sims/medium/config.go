package medium

import (
	"fmt"
	"strconv"

	"growth-medium/internal/core"
)

const (
	// CounterDirect selects the nested-loop neighbour counter.
	CounterDirect = "direct"
	// CounterFFT selects the FFT convolution neighbour counter.
	CounterFFT = "fft"
)

// Config holds the immutable geometry and aging settings of an engine.
type Config struct {
	// MinRows and MinCols are the viewport dimensions at zoom 1. The buffer
	// holds MinRows*(MaxZoom+1) by MinCols*(MaxZoom+1) cells.
	MinRows int
	MinCols int
	MaxZoom int

	// AncientThreshold is the lifetime at which a cell is shown as ancient.
	AncientThreshold int

	// ThinMargin and ThickMargin are the widths of the edge bands where the
	// decay masks zero the lifetime buffer, every ThinPeriod and ThickPeriod
	// generations respectively.
	ThinMargin  int
	ThickMargin int
	ThinPeriod  int
	ThickPeriod int

	// Counter names the neighbour counter implementation.
	Counter string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		MinRows:          10,
		MinCols:          16,
		MaxZoom:          10,
		AncientThreshold: 4,
		ThinMargin:       1,
		ThickMargin:      3,
		ThinPeriod:       5,
		ThickPeriod:      10,
		Counter:          CounterDirect,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable or non-positive values keep their defaults; Validate catches
// combinations that are individually fine but unusable together.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	setInt("min_rows", &c.MinRows)
	setInt("min_cols", &c.MinCols)
	setInt("max_zoom", &c.MaxZoom)
	setInt("ancient_threshold", &c.AncientThreshold)
	setInt("thin_margin", &c.ThinMargin)
	setInt("thick_margin", &c.ThickMargin)
	setInt("thin_period", &c.ThinPeriod)
	setInt("thick_period", &c.ThickPeriod)
	if v, ok := cfg["counter"]; ok && v != "" {
		c.Counter = v
	}
	return c
}

// TotalRows is the height of the overallocated buffer.
func (c Config) TotalRows() int { return c.MinRows * (c.MaxZoom + 1) }

// TotalCols is the width of the overallocated buffer.
func (c Config) TotalCols() int { return c.MinCols * (c.MaxZoom + 1) }

// HiddenRows is the height of the hidden margin band.
func (c Config) HiddenRows() int { return c.MinRows / 2 }

// HiddenCols is the width of the hidden margin band.
func (c Config) HiddenCols() int { return c.MinCols / 2 }

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MinRows < 2 || c.MinCols < 2:
		return fmt.Errorf("medium: minimum viewport %dx%d must be at least 2x2: %w", c.MinRows, c.MinCols, core.ErrInvalidInput)
	case c.MaxZoom < 1:
		return fmt.Errorf("medium: max zoom %d must be positive: %w", c.MaxZoom, core.ErrInvalidInput)
	case c.AncientThreshold < 1:
		return fmt.Errorf("medium: ancient threshold %d must be positive: %w", c.AncientThreshold, core.ErrInvalidInput)
	case c.ThinPeriod < 1 || c.ThickPeriod < 1:
		return fmt.Errorf("medium: decay periods must be positive: %w", core.ErrInvalidInput)
	case c.ThinMargin < 0 || c.ThickMargin < 0:
		return fmt.Errorf("medium: decay margins must not be negative: %w", core.ErrInvalidInput)
	}
	widest := c.ThickMargin
	if c.ThinMargin > widest {
		widest = c.ThinMargin
	}
	if 2*widest >= c.TotalRows() || 2*widest >= c.TotalCols() {
		return fmt.Errorf("medium: decay margin %d covers the whole buffer: %w", widest, core.ErrInvalidInput)
	}
	if _, ok := counters[c.Counter]; !ok {
		return fmt.Errorf("medium: unknown counter %q: %w", c.Counter, core.ErrInvalidInput)
	}
	return nil
}

// Parameters describes the configuration for HUD and CLI display.
func (c Config) Parameters() core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Medium",
		Params: []core.Parameter{
			core.IntParam("min_rows", "Min rows", c.MinRows),
			core.IntParam("min_cols", "Min cols", c.MinCols),
			core.IntParam("max_zoom", "Max zoom", c.MaxZoom),
			core.IntParam("ancient_threshold", "Ancient at", c.AncientThreshold),
			core.IntParam("thin_margin", "Thin margin", c.ThinMargin),
			core.IntParam("thick_margin", "Thick margin", c.ThickMargin),
			core.StringParam("counter", "Counter", c.Counter),
		},
	}
}
