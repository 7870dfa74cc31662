package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"growth-medium/internal/core"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

var (
	// ErrNotRunnable reports that the current configuration cannot evolve:
	// it is empty or the last run already halted.
	ErrNotRunnable = errors.New("nothing to run")
	// ErrRunning reports an edit attempted while evolution is in progress.
	ErrRunning = errors.New("evolution in progress")
)

// Speed bounds in generations per second.
const (
	MinFPS = 1
	MaxFPS = 10
)

// Session drives one engine the way an interactive front end does: it owns
// the generation counter and play/pause state, paces evolution and keeps an
// edit fork separate from the configuration it was forked from until the
// edit is committed or discarded.
type Session struct {
	cfg   medium.Config
	store *store.Store

	engine *medium.Engine
	// base is the engine an edit fork was taken from; nil when no edit is
	// pending.
	base *medium.Engine

	round   int
	fps     int
	running bool
	canRun  bool
	timer   *core.FixedStep
	runID   uuid.UUID
}

// NewSession returns a paused session showing an empty configuration at zoom 1.
func NewSession(cfg medium.Config, st *store.Store) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e, err := medium.New(cfg, 1)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		store:  st,
		engine: e,
		fps:    MinFPS,
		timer:  core.NewFixedStep(MinFPS),
		runID:  uuid.New(),
	}
	return s, nil
}

func (s *Session) logf(format string, args ...any) {
	log.Printf("[session %s] "+format, append([]any{s.runID}, args...)...)
}

// Name is the title shown by the HUD.
func (s *Session) Name() string { return "growth medium" }

// Round is the generation currently on display.
func (s *Session) Round() int { return s.round }

// FPS is the evolution speed in generations per second.
func (s *Session) FPS() int { return s.fps }

// Running reports whether evolution is in progress.
func (s *Session) Running() bool { return s.running }

// CanRun reports whether Start or Step would advance the configuration.
func (s *Session) CanRun() bool { return s.canRun }

// Custom reports whether an edit fork is pending.
func (s *Session) Custom() bool { return s.base != nil }

// RunID identifies the current run in log lines.
func (s *Session) RunID() uuid.UUID { return s.runID }

// Engine exposes the active engine.
func (s *Session) Engine() *medium.Engine { return s.engine }

// Window returns the cells currently on display.
func (s *Session) Window() []uint8 { return s.engine.Window() }

// Info returns the current viewport geometry.
func (s *Session) Info() medium.ViewportInfo { return s.engine.Viewport().Info() }

// Start resumes evolution, committing a pending edit first.
func (s *Session) Start() error {
	if s.base != nil {
		s.commit()
	}
	if !s.canRun {
		return ErrNotRunnable
	}
	if s.round == 0 {
		s.runID = uuid.New()
	}
	s.running = true
	s.timer.Restart()
	s.logf("started at generation %d, %d fps", s.round, s.fps)
	return nil
}

// Pause stops evolution; the current generation stays on display.
func (s *Session) Pause() {
	if !s.running {
		return
	}
	s.running = false
	s.logf("paused at generation %d", s.round)
}

// Step advances one generation. Extinction or a steady state pauses the
// session and leaves it unable to run until it is reset.
func (s *Session) Step() error {
	if s.base != nil {
		s.commit()
	}
	if !s.canRun {
		return ErrNotRunnable
	}
	s.round++
	extinct, steady, _, err := s.engine.Advance(s.round)
	if err != nil {
		s.round--
		return err
	}
	if extinct || steady {
		s.running = false
		s.canRun = false
		reason := "extinction"
		if steady {
			reason = "steady state"
		}
		s.logf("halted by %s at generation %d", reason, s.round)
	}
	return nil
}

// Update advances evolution when the session is running and the cadence
// allows it.
func (s *Session) Update() error { return s.Tick(time.Now()) }

// Tick is Update with an explicit clock reading.
func (s *Session) Tick(now time.Time) error {
	if !s.running || !s.timer.Tick(now) {
		return nil
	}
	return s.Step()
}

// Reset pauses and returns to generation 0, discarding a pending edit.
func (s *Session) Reset() {
	s.Pause()
	if s.base != nil {
		s.engine = s.base
		s.base = nil
	}
	s.rewind()
}

// Clear replaces the configuration with an empty one at the current zoom.
func (s *Session) Clear() error {
	e, err := medium.New(s.cfg, s.engine.Viewport().Zoom)
	if err != nil {
		return err
	}
	s.install(e)
	return nil
}

// Toggle flips configuration cell (i, j) of the viewport. The first edit
// forks the engine from what is on display; later edits go to the fork.
func (s *Session) Toggle(i, j int) error {
	if s.running {
		return ErrRunning
	}
	if !s.engine.Viewport().Contains(i, j) {
		return fmt.Errorf("app: cell (%d,%d): %w", i, j, core.ErrOutOfRange)
	}
	if s.base == nil {
		s.base = s.engine
		s.engine = s.engine.Fork()
	}
	window, err := s.engine.ToggleCell(i, j)
	if err != nil {
		return err
	}
	s.canRun = anyLive(window)
	return nil
}

func (s *Session) commit() {
	s.base = nil
	s.rewind()
}

// install replaces the active engine and starts a fresh run on it.
func (s *Session) install(e *medium.Engine) {
	s.Pause()
	s.engine = e
	s.base = nil
	s.rewind()
	s.runID = uuid.New()
}

func (s *Session) rewind() {
	s.round = 0
	s.engine.Advance(0)
	s.canRun = s.engine.Population() > 0
}

// Load replaces the configuration with a stored one. The current zoom is
// the minimum zoom of the loaded engine.
func (s *Session) Load(name string) error {
	e, err := store.LoadEngine(s.store, name, s.cfg, s.engine.Viewport().Zoom)
	if err != nil {
		return err
	}
	s.install(e)
	s.logf("loaded %s at zoom %d", name, e.Viewport().Zoom)
	return nil
}

// Soup replaces the configuration with a random soup filling the viewport.
func (s *Session) Soup(seed int64, density float64) error {
	info := s.Info()
	pattern := medium.Soup(medium.SoupConfig{Rows: info.Rows, Cols: info.Cols, Density: density}, seed)
	e, err := medium.FromPattern(s.cfg, pattern, info.Zoom)
	if err != nil {
		return err
	}
	s.install(e)
	s.logf("soup seed %d density %.2f", seed, density)
	return nil
}

// Save stores the live cells on display under name.
func (s *Session) Save(name string) error {
	return store.SaveEngine(s.store, name, s.engine)
}

// Files lists stored configurations.
func (s *Session) Files() ([]string, error) { return s.store.List() }

// Exists reports whether name is already stored.
func (s *Session) Exists(name string) bool { return s.store.Exists(name) }

// IncreaseFPS speeds evolution up by one generation per second.
func (s *Session) IncreaseFPS() { s.setFPS(s.fps + 1) }

// DecreaseFPS slows evolution down by one generation per second.
func (s *Session) DecreaseFPS() { s.setFPS(s.fps - 1) }

func (s *Session) setFPS(fps int) bool {
	if fps < MinFPS || fps > MaxFPS || fps == s.fps {
		return false
	}
	s.fps = fps
	s.timer.SetTPS(fps)
	return true
}

// ZoomIn enlarges the visible window.
func (s *Session) ZoomIn() (medium.ViewportInfo, error) { return s.engine.ZoomIn() }

// ZoomOut shrinks the visible window.
func (s *Session) ZoomOut() (medium.ViewportInfo, error) { return s.engine.ZoomOut() }

// PanLeft scrolls one column left.
func (s *Session) PanLeft() medium.ViewportInfo { return s.engine.PanLeft() }

// PanRight scrolls one column right.
func (s *Session) PanRight() medium.ViewportInfo { return s.engine.PanRight() }

// PanUp scrolls one row up.
func (s *Session) PanUp() medium.ViewportInfo { return s.engine.PanUp() }

// PanDown scrolls one row down.
func (s *Session) PanDown() medium.ViewportInfo { return s.engine.PanDown() }

// Parameters reports session state followed by the engine's parameters.
func (s *Session) Parameters() core.ParameterSnapshot {
	run := core.ParameterGroup{
		Name: "Session",
		Params: []core.Parameter{
			core.IntParam("round", "Round", s.round),
			core.IntParam("fps", "Speed (fps)", s.fps),
			core.BoolParam("running", "Running", s.running),
			core.BoolParam("can_run", "Can run", s.canRun),
			core.BoolParam("custom", "Editing", s.base != nil),
			core.StringParam("run_id", "Run", s.runID.String()),
		},
	}
	snap := s.engine.Parameters()
	snap.Groups = append([]core.ParameterGroup{run}, snap.Groups...)
	return snap
}

// ParameterControls exposes speed and zoom to the HUD.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fps", Label: "Speed", Type: core.ParamTypeInt, Step: 1, Min: MinFPS, Max: MaxFPS, HasMin: true, HasMax: true},
		{Key: "zoom", Label: "Zoom", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: float64(s.cfg.MaxZoom), HasMin: true, HasMax: true},
	}
}

// SetIntParameter implements core.IntParameterSetter.
func (s *Session) SetIntParameter(key string, value int) bool {
	switch key {
	case "fps":
		return s.setFPS(value)
	case "zoom":
		if value < 1 || value > s.cfg.MaxZoom {
			return false
		}
		changed := false
		for s.engine.Viewport().Zoom < value {
			if _, err := s.engine.ZoomIn(); err != nil {
				return changed
			}
			changed = true
		}
		for s.engine.Viewport().Zoom > value {
			if _, err := s.engine.ZoomOut(); err != nil {
				return changed
			}
			changed = true
		}
		return changed
	}
	return false
}

func anyLive(cells []uint8) bool {
	for _, v := range cells {
		if v != 0 {
			return true
		}
	}
	return false
}
