package handler

import (
	"errors"
	"math"
)

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// IDPath is the path of a single record inside a route group.
	IDPath = "/:id"

	// DefaultPageSize for pagination.
	DefaultPageSize = 25

	// MaxPageSize caps the pageSize query parameter.
	MaxPageSize = 100

	// MaxPage caps the page query parameter so the row offset fits in 32 bits.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// ErrNilDependency is returned by Init when router or store is nil.
var ErrNilDependency = errors.New("router or store is nil")
