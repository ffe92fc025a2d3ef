package persistence

import "errors"

var (
	// ErrNoSnapshot is returned when there is nothing to load
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrRestoreEmptied is returned when a non-empty payload sanitizes to nothing.
	// The caller's state is left untouched.
	ErrRestoreEmptied = errors.New("sanitized payload is empty")
)
