package app

import (
	"errors"
	"slices"
	"testing"
	"time"

	"growth-medium/internal/core"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

var glider = [][]uint8{
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 1},
}

// gliderCells are the viewport coordinates of a glider centred at zoom 1.
var gliderCells = [][2]int{{3, 7}, {4, 8}, {5, 6}, {5, 7}, {5, 8}}

func newTestSession(t *testing.T) (*Session, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	s, err := NewSession(medium.DefaultConfig(), st)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, st
}

func drawGlider(t *testing.T, s *Session) {
	t.Helper()
	for _, c := range gliderCells {
		if err := s.Toggle(c[0], c[1]); err != nil {
			t.Fatalf("Toggle%v: %v", c, err)
		}
	}
}

func TestNewSessionIsEmpty(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Round() != 0 || s.Running() || s.CanRun() || s.Custom() {
		t.Fatalf("fresh session: round=%d running=%v canRun=%v custom=%v", s.Round(), s.Running(), s.CanRun(), s.Custom())
	}
	if err := s.Start(); !errors.Is(err, ErrNotRunnable) {
		t.Fatalf("Start on empty session err = %v", err)
	}
	if err := s.Step(); !errors.Is(err, ErrNotRunnable) {
		t.Fatalf("Step on empty session err = %v", err)
	}
	if info := s.Info(); info.Zoom != 1 || info.Rows != 10 || info.Cols != 16 {
		t.Fatalf("info = %+v", info)
	}
}

func TestEditForkCommittedOnStart(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	if !s.Custom() || !s.CanRun() {
		t.Fatalf("after edits custom=%v canRun=%v", s.Custom(), s.CanRun())
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Custom() || !s.Running() {
		t.Fatalf("after Start custom=%v running=%v", s.Custom(), s.Running())
	}
	if err := s.Toggle(0, 0); !errors.Is(err, ErrRunning) {
		t.Fatalf("Toggle while running err = %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.Round() != 1 || s.Engine().Generation() != 1 {
		t.Fatalf("round = %d, generation = %d", s.Round(), s.Engine().Generation())
	}
	s.Pause()
	if s.Running() {
		t.Fatal("Pause left the session running")
	}
}

func TestEditForkDiscardedOnReset(t *testing.T) {
	s, st := newTestSession(t)
	if err := st.Save("glider", glider); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Load("glider"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	original := s.Window()
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	s.Pause()
	if err := s.Toggle(0, 0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !s.Custom() {
		t.Fatal("first edit should fork")
	}
	if s.Window()[0] != 1 {
		t.Fatal("edit not visible")
	}
	s.Reset()
	if s.Custom() || s.Round() != 0 || !s.CanRun() {
		t.Fatalf("after Reset custom=%v round=%d canRun=%v", s.Custom(), s.Round(), s.CanRun())
	}
	if got := s.Window(); !slices.Equal(got, original) {
		t.Fatal("Reset did not restore the loaded configuration")
	}
}

func TestForkStartsFromDisplayedGeneration(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	s.Pause()
	shown := s.Window()
	if err := s.Toggle(0, 0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := s.Toggle(0, 0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := s.Window(); !slices.Equal(got, shown) {
		t.Fatal("fork should hold the generation on display")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Round() != 0 {
		t.Fatalf("commit should rewind the round, got %d", s.Round())
	}
}

func TestHaltStopsSession(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Toggle(5, 5); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.Running() || s.CanRun() {
		t.Fatalf("extinction should halt: running=%v canRun=%v", s.Running(), s.CanRun())
	}
	if err := s.Step(); !errors.Is(err, ErrNotRunnable) {
		t.Fatalf("Step after halt err = %v", err)
	}
	s.Reset()
	if !s.CanRun() || s.Round() != 0 {
		t.Fatalf("Reset should rearm: canRun=%v round=%d", s.CanRun(), s.Round())
	}
}

func TestTickFollowsCadence(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	t0 := time.Unix(1000, 0)
	if err := s.Tick(t0); err != nil || s.Round() != 0 {
		t.Fatalf("paused tick advanced: round=%d err=%v", s.Round(), err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Tick(t0); err != nil || s.Round() != 1 {
		t.Fatalf("first tick: round=%d err=%v", s.Round(), err)
	}
	if err := s.Tick(t0.Add(10 * time.Millisecond)); err != nil || s.Round() != 1 {
		t.Fatalf("early tick: round=%d err=%v", s.Round(), err)
	}
	if err := s.Tick(t0.Add(1010 * time.Millisecond)); err != nil || s.Round() != 2 {
		t.Fatalf("tick after one interval: round=%d err=%v", s.Round(), err)
	}
}

func TestFPSBounds(t *testing.T) {
	s, _ := newTestSession(t)
	s.DecreaseFPS()
	if s.FPS() != MinFPS {
		t.Fatalf("fps = %d, want %d", s.FPS(), MinFPS)
	}
	for i := 0; i < 20; i++ {
		s.IncreaseFPS()
	}
	if s.FPS() != MaxFPS {
		t.Fatalf("fps = %d, want %d", s.FPS(), MaxFPS)
	}
	if s.SetIntParameter("fps", MaxFPS+1) {
		t.Fatal("fps above the maximum accepted")
	}
	if !s.SetIntParameter("fps", 4) || s.FPS() != 4 {
		t.Fatalf("SetIntParameter fps: %d", s.FPS())
	}
}

func TestZoomParameter(t *testing.T) {
	s, _ := newTestSession(t)
	if !s.SetIntParameter("zoom", 3) {
		t.Fatal("SetIntParameter zoom returned false")
	}
	if info := s.Info(); info.Zoom != 3 || info.Rows != 30 || info.Cols != 48 {
		t.Fatalf("info = %+v", info)
	}
	if s.SetIntParameter("zoom", 3) {
		t.Fatal("unchanged zoom reported a change")
	}
	if s.SetIntParameter("zoom", 0) || s.SetIntParameter("unknown", 1) {
		t.Fatal("invalid parameter accepted")
	}
	if _, err := s.ZoomOut(); err != nil {
		t.Fatalf("ZoomOut: %v", err)
	}
	if got := s.PanRight().HPos; got <= 0.5 {
		t.Fatalf("hpos after PanRight = %f", got)
	}
	controls := s.ParameterControls()
	if len(controls) != 2 || controls[1].Max != 10 {
		t.Fatalf("controls = %+v", controls)
	}
}

func TestClearKeepsZoom(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	if _, err := s.ZoomIn(); err != nil {
		t.Fatalf("ZoomIn: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Custom() || s.CanRun() || s.Info().Zoom != 2 {
		t.Fatalf("after Clear custom=%v canRun=%v zoom=%d", s.Custom(), s.CanRun(), s.Info().Zoom)
	}
	if s.Engine().Population() != 0 {
		t.Fatal("Clear left live cells")
	}
}

func TestToggleOutOfRangeDoesNotFork(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Toggle(10, 0); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("err = %v", err)
	}
	if s.Custom() {
		t.Fatal("rejected edit forked the engine")
	}
}

func TestSaveLoadFiles(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	if err := s.Save("mine"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("mine"); !errors.Is(err, core.ErrAlreadyExists) {
		t.Fatalf("second Save err = %v", err)
	}
	if !s.Exists("mine") || s.Exists("other") {
		t.Fatal("Exists mismatch")
	}
	names, err := s.Files()
	if err != nil || !slices.Equal(names, []string{"mine"}) {
		t.Fatalf("Files = %v, %v", names, err)
	}
	if err := s.Load("other"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Load missing err = %v", err)
	}
	s.SetIntParameter("zoom", 2)
	if err := s.Load("mine"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Info().Zoom != 2 || s.Engine().Population() != 5 || !s.CanRun() {
		t.Fatalf("loaded zoom=%d population=%d", s.Info().Zoom, s.Engine().Population())
	}
}

func TestParametersSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	drawGlider(t, s)
	snap := s.Parameters()
	if len(snap.Groups) == 0 || snap.Groups[0].Name != "Session" {
		t.Fatalf("groups = %+v", snap.Groups)
	}
	if p, ok := snap.Lookup("custom"); !ok || p.Value != "true" {
		t.Fatalf("custom = %+v", p)
	}
	if p, ok := snap.Lookup("run_id"); !ok || p.Value != s.RunID().String() {
		t.Fatalf("run_id = %+v", p)
	}
	if _, ok := snap.Lookup("population"); !ok {
		t.Fatal("engine parameters missing")
	}
}

func TestSoupFillsViewport(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetIntParameter("zoom", 2)
	if err := s.Soup(3, 0.4); err != nil {
		t.Fatalf("Soup: %v", err)
	}
	if s.Info().Zoom != 2 || s.Round() != 0 || !s.CanRun() {
		t.Fatalf("zoom=%d round=%d canRun=%v", s.Info().Zoom, s.Round(), s.CanRun())
	}
	first := s.Window()
	if err := s.Soup(3, 0.4); err != nil {
		t.Fatalf("Soup: %v", err)
	}
	if !slices.Equal(first, s.Window()) {
		t.Fatal("same seed produced a different soup")
	}
}
