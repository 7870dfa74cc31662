package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"growth-medium/internal/store"
)

func cmdSurvey(args []string, out io.Writer) error {
	fs := newFlagSet("survey", out)
	var ef engineFlags
	ef.bind(fs)
	gens := fs.Int("gens", 500, "maximum generations per configuration")
	workers := fs.Int("workers", runtime.NumCPU(), "number of configurations evolved at once")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := ef.config()
	if err != nil {
		return err
	}
	st, err := ef.open()
	if err != nil {
		return err
	}
	names, err := st.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "no configurations in %s\n", st.Dir())
		return nil
	}

	fmt.Fprintf(out, "Surveying %d configurations (%d workers, %d generations)\n", len(names), *workers, *gens)
	results := make([]outcome, len(names))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*workers, 1))
	for i, name := range names {
		g.Go(func() error {
			e, err := store.LoadEngine(st, name, cfg, ef.zoom)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res, err := evolve(ctx, e, *gens, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res.name = name
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].gens != results[j].gens {
			return results[i].gens > results[j].gens
		}
		return results[i].name < results[j].name
	})
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGENERATIONS\tHALT\tFINAL\tPEAK")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n", r.name, r.gens, r.halt, r.final, r.peak)
	}
	return tw.Flush()
}
