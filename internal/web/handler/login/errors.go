// Package login provides the HTTP handlers for token based authentication.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrNoClaims is returned when a protected route runs without verified claims.
	ErrNoClaims = errors.New("no verified token claims in request")
)
