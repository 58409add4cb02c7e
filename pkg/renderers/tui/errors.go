package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoFields is returned when a field filter matches nothing.
	ErrNoFields = errors.New("tui: no fields to edit")
)
