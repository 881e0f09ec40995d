package repository

import "errors"

var (
	// ErrNotFound is returned when no live row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write collides with a unique key.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a referenced namespace, user, role or resource does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrNoChanges is returned by Update when the patch carries no mutable column.
	ErrNoChanges = errors.New("no mutable field supplied")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
