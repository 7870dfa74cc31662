//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"growth-medium/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Panel is the source of the values shown by the HUD. Implementations may
// also provide core.ParameterControlsProvider and core.IntParameterSetter
// to expose +/- buttons.
type Panel interface {
	Name() string
	core.ParameterProvider
}

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	src        Panel
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	panelOffsetX int
	title        string
	hidden       map[string]bool

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided source and panel width. Groups
// named in hide are left out of the value listing.
func NewHUD(src Panel, width int, hide ...string) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{src: src, width: width, hidden: map[string]bool{}}
	for _, name := range hide {
		h.hidden[name] = true
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(src)
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	if setter, ok := src.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	return h
}

// Width is the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot and handles HUD clicks.
// It reports whether the click landed on the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	h.refreshControlValues()
	return h.handleInput()
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawSnapshot()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(src Panel) string {
	if src == nil || src.Name() == "" {
		return "Controls"
	}
	name := src.Name()
	return fmt.Sprintf("%s%s", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || state.control.Type != core.ParamTypeInt {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = strconv.Itoa(parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			break
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			break
		}
	}
	return true
}

func (h *HUD) target(state *hudControlState, direction int) (int, bool) {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin && target < int(math.Round(state.control.Min)) {
		return 0, false
	}
	if state.control.HasMax && target > int(math.Round(state.control.Max)) {
		return 0, false
	}
	return target, true
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if h.intSetter == nil || direction == 0 {
		return
	}
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	if h.intSetter.SetIntParameter(state.control.Key, target) {
		state.intValue = target
		state.value = strconv.Itoa(target)
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if h.intSetter == nil || !state.hasValue {
		return false
	}
	_, ok := h.target(state, direction)
	return ok
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
}

// drawSnapshot lists the remaining parameter groups below the controls.
func (h *HUD) drawSnapshot() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + valueSpacing
	for _, group := range h.snapshot.Groups {
		if h.hidden[group.Name] {
			continue
		}
		if y > h.lastHeight-panelPadding {
			return
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, color.RGBA{R: 120, G: 200, B: 190, A: 255})
		y += valueSpacing
		for _, p := range group.Params {
			if y > h.lastHeight-panelPadding {
				return
			}
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, color.RGBA{R: 170, G: 170, B: 180, A: 255})
			value := p.Value
			if len(value) > 12 {
				value = value[:9] + "..."
			}
			bounds := text.BoundString(face, value)
			text.Draw(h.panel, value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
			y += valueSpacing
		}
		y += valueSpacing / 2
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	valueSpacing   = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
