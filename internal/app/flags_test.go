package app

import (
	"errors"
	"flag"
	"testing"

	"growth-medium/internal/core"
	"growth-medium/internal/store"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-dir", "x", "-zoom", "3", "-fps", "4", "-set", "max_zoom=6", "-set", "counter=fft"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Dir != "x" || cfg.Zoom != 3 || cfg.FPS != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	m, err := cfg.Medium()
	if err != nil {
		t.Fatalf("Medium: %v", err)
	}
	if m.MaxZoom != 6 || m.Counter != "fft" {
		t.Fatalf("medium config = %+v", m)
	}
}

func TestKVListRejectsBarePairs(t *testing.T) {
	var l KVList
	if err := l.Set("novalue"); err == nil {
		t.Fatal("Set accepted a value without '='")
	}
	if err := l.Set("a=1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("a=2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := l.Map()["a"]; got != "2" {
		t.Fatalf("later key should win, got %q", got)
	}
}

func TestMediumRejectsUnknownCounter(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = KVList{"counter=abacus"}
	if _, err := cfg.Medium(); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenLoadsStartupPattern(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := st.Save("glider", glider); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg := NewConfig()
	cfg.Dir = dir
	cfg.Pattern = "glider"
	cfg.Zoom = 2
	cfg.FPS = 7
	s, err := cfg.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.FPS() != 7 || s.Info().Zoom != 2 || !s.CanRun() {
		t.Fatalf("fps=%d zoom=%d canRun=%v", s.FPS(), s.Info().Zoom, s.CanRun())
	}

	cfg.Zoom = 99
	if _, err := cfg.Open(); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("oversized zoom err = %v", err)
	}
}
