// Package repository wraps the Mongo collections behind per-entity interfaces
// so the bookkeeping services can be exercised against in-memory fakes.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("repository: document not found")
	// ErrConflict is returned when a guarded write loses a race: the document
	// exists but its counters no longer match the values it was read with.
	ErrConflict = errors.New("repository: document modified concurrently")
)
