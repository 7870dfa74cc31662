package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"growth-medium/internal/core"
	"growth-medium/internal/render"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

func cmdSoup(args []string, out io.Writer) error {
	fs := newFlagSet("soup", out)
	var ef engineFlags
	ef.bind(fs)
	simName := fs.String("sim", "medium", "registered simulation to run")
	seed := fs.Int64("seed", 42, "soup seed")
	density := fs.Float64("density", medium.DefaultSoupDensity, "mean fraction of live cells")
	gens := fs.Int("gens", 100, "maximum number of generations")
	save := fs.String("save", "", "store the generation 0 soup under this name")
	chart := fs.Bool("chart", true, "plot the population after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	factory, ok := core.Sims()[*simName]
	if !ok {
		return fmt.Errorf("unknown sim %q (have %s): %w", *simName, strings.Join(core.SimNames(), ", "), core.ErrNotFound)
	}
	params := ef.set.Map()
	params["zoom"] = strconv.Itoa(ef.zoom)
	params["density"] = strconv.FormatFloat(*density, 'f', -1, 64)
	sim := factory(params)
	sim.Reset(*seed)
	size := sim.Size()

	if *save != "" {
		st, err := ef.open()
		if err != nil {
			return err
		}
		pattern, err := store.Crop(sim.Cells(), size.W, size.H)
		if err != nil {
			return err
		}
		if err := st.Save(*save, pattern); err != nil {
			return err
		}
	}

	halted := func() bool {
		h, ok := sim.(core.Halter)
		return ok && h.Halted()
	}
	population := []float64{float64(live(sim.Cells()))}
	t := 0
	for ; t < *gens && !halted(); t++ {
		sim.Step()
		population = append(population, float64(live(sim.Cells())))
	}

	title := fmt.Sprintf("%s  seed %d  generation %d  population %d", sim.Name(), *seed, t, live(sim.Cells()))
	fmt.Fprintln(out, render.NewText(out).Frame(title, sim.Cells(), size.W))
	if halted() {
		fmt.Fprintln(out, "halted")
	}
	if *chart {
		plotPopulation(out, population)
	}
	return nil
}

func live(cells []uint8) int {
	n := 0
	for _, v := range cells {
		if v != 0 {
			n++
		}
	}
	return n
}
