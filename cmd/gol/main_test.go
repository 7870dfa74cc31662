package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"growth-medium/internal/core"
	"growth-medium/internal/store"
)

func seedStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	patterns := map[string][][]uint8{
		"glider": {{0, 1, 0}, {0, 0, 1}, {1, 1, 1}},
		"block":  {{1, 1}, {1, 1}},
		"single": {{1}},
	}
	for name, p := range patterns {
		if err := st.Save(name, p); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	return dir
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := run(args, &out); err != nil {
		t.Fatalf("gol %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestList(t *testing.T) {
	dir := seedStore(t)
	if got, want := runCmd(t, "list", "-dir", dir), "block\nglider\nsingle\n"; got != want {
		t.Fatalf("list = %q, want %q", got, want)
	}
}

func TestShow(t *testing.T) {
	dir := seedStore(t)
	got := runCmd(t, "show", "-dir", dir, "-name", "glider")
	if !strings.Contains(got, "3 rows x 3 cols") || !strings.Contains(got, ".o.\n..o\nooo") {
		t.Fatalf("show output:\n%s", got)
	}
}

func TestRunReportsHalt(t *testing.T) {
	dir := seedStore(t)
	got := runCmd(t, "run", "-dir", dir, "-name", "single", "-gens", "10")
	if !strings.Contains(got, "generations 1  halt extinct  final 0  peak 1") {
		t.Fatalf("run output:\n%s", got)
	}
	got = runCmd(t, "run", "-dir", dir, "-name", "glider", "-gens", "4", "-every", "2")
	if n := strings.Count(got, "glider  generation"); n != 3 {
		t.Fatalf("printed %d frames, want 3:\n%s", n, got)
	}
	if !strings.Contains(got, "halt -") || !strings.Contains(got, "population") {
		t.Fatalf("run output:\n%s", got)
	}
}

func TestRunErrors(t *testing.T) {
	dir := seedStore(t)
	var out bytes.Buffer
	if err := run([]string{"run", "-dir", dir}, &out); !errors.Is(err, errUsage) {
		t.Fatalf("missing name err = %v", err)
	}
	if err := run([]string{"run", "-dir", dir, "-name", "nothing"}, &out); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing file err = %v", err)
	}
	if err := run([]string{"run", "-dir", dir, "-name", "glider", "-set", "counter=abacus"}, &out); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("bad counter err = %v", err)
	}
	if err := run([]string{"bogus"}, &out); !errors.Is(err, errUsage) {
		t.Fatalf("unknown command err = %v", err)
	}
	if err := run(nil, &out); !errors.Is(err, errUsage) {
		t.Fatalf("no command err = %v", err)
	}
}

func TestSurveySortsByLifespan(t *testing.T) {
	dir := seedStore(t)
	got := runCmd(t, "survey", "-dir", dir, "-gens", "20", "-workers", "2", "-set", "counter=fft")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 5 {
		t.Fatalf("survey output:\n%s", got)
	}
	order := []string{"glider", "block", "single"}
	for i, name := range order {
		if !strings.HasPrefix(lines[i+2], name) {
			t.Fatalf("row %d = %q, want %s first\n%s", i, lines[i+2], name, got)
		}
	}
	if !strings.Contains(lines[3], "steady") || !strings.Contains(lines[4], "extinct") {
		t.Fatalf("halt reasons missing:\n%s", got)
	}
}

func TestSoupSavesGenerationZero(t *testing.T) {
	dir := t.TempDir()
	got := runCmd(t, "soup", "-dir", dir, "-seed", "5", "-gens", "3", "-save", "s5", "-zoom", "2")
	if !strings.Contains(got, "medium  seed 5") {
		t.Fatalf("soup output:\n%s", got)
	}
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !st.Exists("s5") {
		t.Fatal("soup was not saved")
	}
	var out bytes.Buffer
	if err := run([]string{"soup", "-sim", "nope"}, &out); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("unknown sim err = %v", err)
	}
}

func TestSims(t *testing.T) {
	got := runCmd(t, "sims")
	for _, name := range []string{"medium\n", "medium-fft\n"} {
		if !strings.Contains(got, name) {
			t.Fatalf("sims output missing %q:\n%s", name, got)
		}
	}
}
