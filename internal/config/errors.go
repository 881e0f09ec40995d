package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyJWTSecret error if no token signing secret was configured.
	ErrEmptyJWTSecret = errors.New("config jwt.secret can not be empty")

	// ErrUnsupportedGormEngine error if db.gormengine is not one of mysql, postgres, sqlite.
	ErrUnsupportedGormEngine = errors.New("config db.gormengine is not supported")
)
