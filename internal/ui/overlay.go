//go:build ebiten

package ui

import (
	"image/color"

	"growth-medium/internal/sims/medium"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type viewportSource interface {
	Info() medium.ViewportInfo
}

// Overlay draws scrollbars and optional cell grid lines over the grid view.
type Overlay struct {
	src     viewportSource
	maxZoom int

	showBars  bool
	showLines bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for a viewport source whose zoom ranges
// up to maxZoom.
func NewOverlay(src viewportSource, maxZoom int) *Overlay {
	if maxZoom < 1 {
		maxZoom = 1
	}
	o := &Overlay{src: src, maxZoom: maxZoom, showBars: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: Tab for scrollbars, G for grid lines.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.showBars = !o.showBars
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showLines = !o.showLines
	}
}

// Draw renders the overlay over a w*h pixel grid area.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	info := o.src.Info()
	if o.showLines && info.Cols > 0 && info.Rows > 0 {
		o.drawLines(screen, info, w, h)
	}
	if o.showBars {
		o.drawBars(screen, info, w, h)
	}
}

func (o *Overlay) drawLines(screen *ebiten.Image, info medium.ViewportInfo, w, h int) {
	cellW := float64(w) / float64(info.Cols)
	cellH := float64(h) / float64(info.Rows)
	if cellW < minLineCell || cellH < minLineCell {
		return
	}
	col := color.NRGBA{R: 40, G: 44, B: 52, A: 160}
	for c := 1; c < info.Cols; c++ {
		o.fillRect(screen, float64(c)*cellW, 0, 1, float64(h), col)
	}
	for r := 1; r < info.Rows; r++ {
		o.fillRect(screen, 0, float64(r)*cellH, float64(w), 1, col)
	}
}

func (o *Overlay) drawBars(screen *ebiten.Image, info medium.ViewportInfo, w, h int) {
	track := color.NRGBA{R: 255, G: 255, B: 255, A: 24}
	thumb := color.NRGBA{R: 200, G: 200, B: 220, A: 140}
	frac := clamp01(float64(info.Zoom) / float64(o.maxZoom))

	hLen := float64(w) * frac
	hx := clamp(info.HPos*float64(w)-hLen/2, 0, float64(w)-hLen)
	o.fillRect(screen, 0, float64(h-barThickness), float64(w), barThickness, track)
	o.fillRect(screen, hx, float64(h-barThickness), hLen, barThickness, thumb)

	vLen := float64(h) * frac
	vy := clamp(info.VPos*float64(h)-vLen/2, 0, float64(h)-vLen)
	o.fillRect(screen, float64(w-barThickness), 0, barThickness, float64(h), track)
	o.fillRect(screen, float64(w-barThickness), vy, barThickness, vLen, thumb)
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.Color) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

const (
	barThickness = 4
	minLineCell  = 6
)
