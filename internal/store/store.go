// Package store persists growth medium configurations as plain text files,
// one <name>.gm file per configuration.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"growth-medium/internal/core"
	"growth-medium/internal/sims/medium"
)

// Ext is the file extension of stored configurations.
const Ext = ".gm"

// DefaultDir is the directory used when none is configured.
const DefaultDir = "growth_mediums"

// Store is a directory of configuration files.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating the directory when needed.
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("store: invalid name %q: %w", name, core.ErrInvalidInput)
	}
	return filepath.Join(s.dir, name+Ext), nil
}

// List returns the stored names in lexical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether name is stored.
func (s *Store) Exists(name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Save writes pattern under name. Existing files are never overwritten.
func (s *Store) Save(name string, pattern [][]uint8) (err error) {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if len(pattern) == 0 || len(pattern[0]) == 0 {
		return fmt.Errorf("store: %s: %w", name, core.ErrEmptyState)
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("store: %s: %w", name, core.ErrAlreadyExists)
		}
		return fmt.Errorf("store: create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("store: close %s: %w", name, cerr)
		}
		if err != nil {
			os.Remove(p)
		}
	}()
	if err = Encode(f, pattern); err != nil {
		return err
	}
	log.Printf("[store] saved %s (%dx%d)", name, len(pattern), len(pattern[0]))
	return nil
}

// Load reads the pattern stored under name.
func (s *Store) Load(name string) ([][]uint8, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: %s: %w", name, core.ErrNotFound)
		}
		return nil, fmt.Errorf("store: open %s: %w", name, err)
	}
	defer f.Close()
	pattern, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Printf("[store] loaded %s (%dx%d)", name, len(pattern), len(pattern[0]))
	return pattern, nil
}

// LoadEngine builds an engine from the configuration stored under name.
func LoadEngine(st *Store, name string, cfg medium.Config, minZoom int) (*medium.Engine, error) {
	pattern, err := st.Load(name)
	if err != nil {
		return nil, err
	}
	return medium.FromPattern(cfg, pattern, minZoom)
}

// SaveEngine stores the bounding box of the engine's visible cells.
func SaveEngine(st *Store, name string, e *medium.Engine) error {
	if _, err := st.path(name); err != nil {
		return err
	}
	if st.Exists(name) {
		return fmt.Errorf("store: %s: %w", name, core.ErrAlreadyExists)
	}
	pattern, err := e.Pattern()
	if err != nil {
		return err
	}
	return st.Save(name, pattern)
}
