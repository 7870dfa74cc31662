// Command gol is the headless front end of the growth medium engine: it
// lists, renders and evolves stored configurations from the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"growth-medium/internal/app"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

type command struct {
	run   func(args []string, out io.Writer) error
	brief string
}

var commands = map[string]command{
	"list":   {cmdList, "list stored configurations"},
	"show":   {cmdShow, "print a stored configuration"},
	"run":    {cmdRun, "evolve a stored configuration"},
	"survey": {cmdSurvey, "evolve every stored configuration concurrently"},
	"soup":   {cmdSoup, "evolve a registered simulation from a random soup"},
	"sims":   {cmdSims, "list registered simulations"},
}

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usage(out)
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return cmd.run(args[1:], out)
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "usage: gol <command> [flags]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-7s %s\n", name, commands[name].brief)
	}
}

// engineFlags are shared by the commands that build engines.
type engineFlags struct {
	dir  string
	zoom int
	set  app.KVList
}

func (f *engineFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&f.dir, "dir", store.DefaultDir, "directory of stored configurations")
	fs.IntVar(&f.zoom, "zoom", 1, "minimum zoom level")
	fs.Var(&f.set, "set", "engine setting in key=value form (repeatable)")
}

func (f *engineFlags) config() (medium.Config, error) {
	cfg := medium.FromMap(f.set.Map())
	if err := cfg.Validate(); err != nil {
		return medium.Config{}, err
	}
	return cfg, nil
}

func (f *engineFlags) open() (*store.Store, error) {
	return store.Open(f.dir)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
