package app

import (
	"flag"
	"fmt"
	"strings"

	"growth-medium/internal/core"
	"growth-medium/internal/sims/medium"
	"growth-medium/internal/store"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later keys win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	Dir     string
	Pattern string
	Zoom    int
	Scale   int
	TPS     int
	FPS     int
	Seed    int64
	Set     KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Dir: store.DefaultDir, Zoom: 1, Scale: 40, TPS: 60, FPS: MinFPS, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Dir, "dir", c.Dir, "directory of stored configurations")
	fs.StringVar(&c.Pattern, "load", c.Pattern, "stored configuration to open at startup")
	fs.IntVar(&c.Zoom, "zoom", c.Zoom, "initial (minimum) zoom level")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell at zoom 1")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second of the window")
	fs.IntVar(&c.FPS, "fps", c.FPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random soups")
	fs.Var(&c.Set, "set", "engine setting in key=value form (repeatable)")
}

// Medium resolves the engine configuration from -set overrides.
func (c *Config) Medium() (medium.Config, error) {
	cfg := medium.FromMap(c.Set.Map())
	if err := cfg.Validate(); err != nil {
		return medium.Config{}, err
	}
	return cfg, nil
}

// Open builds a session from the configuration: it opens the store, loads
// the startup pattern if one is named and applies zoom and speed.
func (c *Config) Open() (*Session, error) {
	cfg, err := c.Medium()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(c.Dir)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(cfg, st)
	if err != nil {
		return nil, err
	}
	if c.Zoom > 1 && !s.SetIntParameter("zoom", c.Zoom) {
		return nil, fmt.Errorf("app: zoom %d: %w", c.Zoom, core.ErrOutOfRange)
	}
	if c.FPS != MinFPS && !s.SetIntParameter("fps", c.FPS) {
		return nil, fmt.Errorf("app: fps %d: %w", c.FPS, core.ErrOutOfRange)
	}
	if c.Pattern != "" {
		if err := s.Load(c.Pattern); err != nil {
			return nil, err
		}
	}
	return s, nil
}
