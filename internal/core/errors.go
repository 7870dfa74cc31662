package core

import "errors"

// Sentinel errors shared by the engine and the configuration store. Call
// sites wrap them with context; match with errors.Is.
var (
	// ErrInvalidInput reports a malformed or empty pattern, name or setting.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTooLarge reports content that needs more than the maximum zoom.
	ErrTooLarge = errors.New("too large")
	// ErrOutOfRange reports a viewport operation at a hard boundary or a
	// cell coordinate outside the current viewport.
	ErrOutOfRange = errors.New("out of range")
	// ErrNotFound reports a missing stored configuration.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a name that is already taken in the store.
	ErrAlreadyExists = errors.New("already exists")
	// ErrFormat reports a stored configuration that cannot be parsed.
	ErrFormat = errors.New("bad format")
	// ErrEmptyState reports an attempt to persist a pattern without live cells.
	ErrEmptyState = errors.New("empty state")
)
