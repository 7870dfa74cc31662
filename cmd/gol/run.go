package main

import (
	"context"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"growth-medium/internal/render"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

// Halt reasons reported by evolve.
const (
	haltExtinct = "extinct"
	haltSteady  = "steady"
	haltNone    = "-"
)

type outcome struct {
	name       string
	gens       int
	halt       string
	final      int
	peak       int
	population []float64
}

// evolve advances e from generation 0 until it halts or gens generations
// have been computed. frame, when non-nil, is called after every
// generation including 0.
func evolve(ctx context.Context, e *medium.Engine, gens int, frame func(t int)) (outcome, error) {
	var res outcome
	extinct, steady, _, err := e.Advance(0)
	if err != nil {
		return res, err
	}
	record := func(t int) {
		pop := e.Population()
		res.gens = t
		res.final = pop
		res.peak = max(res.peak, pop)
		res.population = append(res.population, float64(pop))
		if frame != nil {
			frame(t)
		}
	}
	record(0)
	for t := 1; t <= gens && !extinct && !steady; t++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		extinct, steady, _, err = e.Advance(t)
		if err != nil {
			return res, err
		}
		record(t)
	}
	switch {
	case extinct:
		res.halt = haltExtinct
	case steady:
		res.halt = haltSteady
	default:
		res.halt = haltNone
	}
	return res, nil
}

func plotPopulation(out io.Writer, population []float64) {
	if len(population) < 2 {
		return
	}
	fmt.Fprintln(out, asciigraph.Plot(population,
		asciigraph.Height(8),
		asciigraph.Width(min(len(population), 60)),
		asciigraph.Caption("population")))
}

func cmdRun(args []string, out io.Writer) error {
	fs := newFlagSet("run", out)
	var ef engineFlags
	ef.bind(fs)
	name := fs.String("name", "", "stored configuration to run")
	gens := fs.Int("gens", 100, "maximum number of generations")
	every := fs.Int("every", 0, "print a frame every N generations (0 prints the last frame only)")
	chart := fs.Bool("chart", true, "plot the population after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("run: -name is required: %w", errUsage)
	}
	cfg, err := ef.config()
	if err != nil {
		return err
	}
	st, err := ef.open()
	if err != nil {
		return err
	}
	e, err := store.LoadEngine(st, *name, cfg, ef.zoom)
	if err != nil {
		return err
	}

	txt := render.NewText(out)
	cols := e.Viewport().Cols()
	printFrame := func(t int) {
		title := fmt.Sprintf("%s  generation %d  population %d", *name, t, e.Population())
		fmt.Fprintln(out, txt.Frame(title, e.Window(), cols))
	}
	frame := func(t int) {
		if *every > 0 && t%*every == 0 {
			printFrame(t)
		}
	}
	res, err := evolve(context.Background(), e, *gens, frame)
	if err != nil {
		return err
	}
	if *every <= 0 || res.gens%*every != 0 {
		printFrame(res.gens)
	}
	fmt.Fprintf(out, "generations %d  halt %s  final %d  peak %d\n", res.gens, res.halt, res.final, res.peak)
	if *chart {
		plotPopulation(out, res.population)
	}
	return nil
}
