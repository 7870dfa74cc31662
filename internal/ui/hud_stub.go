//go:build !ebiten

package ui

import "growth-medium/internal/core"

// Panel mirrors the GUI build's HUD source.
type Panel interface {
	Name() string
	core.ParameterProvider
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Panel, int, ...string) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
