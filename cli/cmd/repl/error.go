package repl

import "errors"

// Sentinel errors.
var (
	// ErrOutOfBounds is returned for a history index outside the history.
	ErrOutOfBounds = errors.New("history index out of range")
	// ErrEditDeclined is returned when the user chooses not to re-edit a
	// document that failed to compile.
	ErrEditDeclined = errors.New("edit declined")
)
