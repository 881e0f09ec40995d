package auth

import "errors"

var (
	// ErrInvalidCredentials is the message of a failed login.
	// Unknown users and wrong passwords are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned for malformed, expired or foreign tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmptySecret is returned when a Signer is created without secret.
	ErrEmptySecret = errors.New("jwt secret can not be empty")
)
