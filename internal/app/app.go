//go:build ebiten

package app

import (
	"errors"
	"log"
	"time"

	"growth-medium/internal/render"
	"growth-medium/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel.
const HUDWidth = 220

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	gridW, gridH int
	seed         int64
	density      float64
	nextFile     int
}

// New constructs a Game drawing the session's window into a gridW*gridH
// pixel area.
func New(s *Session, gridW, gridH int, seed int64) *Game {
	info := s.Info()
	return &Game{
		session: s,
		painter: render.NewGridPainter(info.Cols, info.Rows),
		overlay: ui.NewOverlay(s, s.cfg.MaxZoom),
		hud:     ui.NewHUD(s, HUDWidth, "Medium"),
		gridW:   gridW,
		gridH:   gridH,
		seed:    seed,
		density: 0.35,
	}
}

// Update handles per-frame input and advances the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if s.Running() {
			s.Pause()
		} else if err := s.Start(); err != nil {
			log.Printf("start: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !s.Running() {
		if err := s.Step(); err != nil && !errors.Is(err, ErrNotRunnable) {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		if err := s.Soup(g.seed, g.density); err != nil {
			log.Printf("soup: %v", err)
		}
		g.seed++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		name := time.Now().Format("20060102-150405")
		if err := s.Save(name); err != nil {
			log.Printf("save: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.loadNext()
	}

	if repeating(ebiten.KeyA) {
		s.PanLeft()
	}
	if repeating(ebiten.KeyD) {
		s.PanRight()
	}
	if repeating(ebiten.KeyW) {
		s.PanUp()
	}
	if repeating(ebiten.KeyS) {
		s.PanDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.ZoomOut()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.IncreaseFPS()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		s.DecreaseFPS()
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	onPanel := g.hud.Update(g.gridW)
	if !onPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.toggleAt(ebiten.CursorPosition())
	}

	if err := s.Update(); err != nil && !errors.Is(err, ErrNotRunnable) {
		return err
	}
	return nil
}

func (g *Game) toggleAt(x, y int) {
	if x < 0 || y < 0 || x >= g.gridW || y >= g.gridH {
		return
	}
	info := g.session.Info()
	i := y * info.Rows / g.gridH
	j := x * info.Cols / g.gridW
	if err := g.session.Toggle(i, j); err != nil && !errors.Is(err, ErrRunning) {
		log.Printf("toggle: %v", err)
	}
}

func (g *Game) loadNext() {
	names, err := g.session.Files()
	if err != nil {
		log.Printf("list: %v", err)
		return
	}
	if len(names) == 0 {
		return
	}
	name := names[g.nextFile%len(names)]
	g.nextFile++
	if err := g.session.Load(name); err != nil {
		log.Printf("load: %v", err)
	}
}

// repeating reports a key press on its first frame and then at a steady
// rate while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 15 && d%3 == 0)
}

// Draw renders the current window, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	info := g.session.Info()
	palette := render.DefaultPalette
	if g.session.Custom() {
		palette = render.EditPalette
	}
	g.painter.Blit(screen, g.session.Window(), info.Cols, info.Rows, palette, g.gridW, g.gridH)
	if g.overlay != nil {
		g.overlay.Draw(screen, g.gridW, g.gridH)
	}
	g.hud.Draw(screen, g.gridW, g.gridH)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.gridW + g.hud.Width(), g.gridH
}
