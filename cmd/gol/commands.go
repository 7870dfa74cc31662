package main

import (
	"fmt"
	"io"

	"growth-medium/internal/core"
	"growth-medium/internal/render"
)

func cmdList(args []string, out io.Writer) error {
	fs := newFlagSet("list", out)
	var ef engineFlags
	ef.bind(fs)
	if err := fs.Parse(args); err != nil {
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
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func cmdShow(args []string, out io.Writer) error {
	fs := newFlagSet("show", out)
	var ef engineFlags
	ef.bind(fs)
	name := fs.String("name", "", "stored configuration to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("show: -name is required: %w", errUsage)
	}
	st, err := ef.open()
	if err != nil {
		return err
	}
	pattern, err := st.Load(*name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d rows x %d cols\n", *name, len(pattern), len(pattern[0]))
	fmt.Fprintln(out, render.NewText(out).Pattern(pattern))
	return nil
}

func cmdSims(args []string, out io.Writer) error {
	fs := newFlagSet("sims", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range core.SimNames() {
		fmt.Fprintln(out, name)
	}
	return nil
}
