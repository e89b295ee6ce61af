package domain

import "errors"

var (
	// ErrNotFound is returned when no project exists for the given id.
	ErrNotFound = errors.New("project not found")
)
