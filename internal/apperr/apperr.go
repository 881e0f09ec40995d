// Package apperr defines the error kinds surfaced to API clients.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
)

// Kind classifies an Error.
type Kind int

// Error kinds.
const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindConflict
	KindNotFound
)

var kindInfo = map[Kind]struct { //nolint:gochecknoglobals
	status int
	code   string
}{
	KindInternal:     {http.StatusInternalServerError, "INTERNAL"},
	KindValidation:   {http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
	KindUnauthorized: {http.StatusUnauthorized, "UNAUTHORIZED"},
	KindConflict:     {http.StatusConflict, "CONFLICT"},
	KindNotFound:     {http.StatusNotFound, "NOT_FOUND"},
}

// Status returns the HTTP status of k.
func (k Kind) Status() int {
	return kindInfo[k].status
}

// Code returns the machine readable code of k.
func (k Kind) Code() string {
	return kindInfo[k].code
}

// Error is a domain error with a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the machine readable code.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// Status returns the HTTP status.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// Validation creates a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Unauthorized creates a KindUnauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Conflict creates a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound creates a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected failure. The cause is not exposed in the message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From converts any error into an *Error.
// Store sentinels keep their message, unknown errors become KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, repository.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: err.Error(), Err: err}
	case errors.Is(err, repository.ErrInvalidReference), errors.Is(err, repository.ErrNoChanges):
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	default:
		return Internal(err)
	}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}
