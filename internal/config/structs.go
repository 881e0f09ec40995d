package config

import (
	"time"

	"github.com/GoACL-Admin/GoACL-Admin/internal/logger"
)

// JWT holds the token signing settings.
type JWT struct {
	Secret string        // HMAC secret used to sign tokens
	Issuer string        // iss claim
	Expiry time.Duration // token lifetime
}

// Seed holds the bootstrap data created on an empty database.
type Seed struct {
	Namespace     string // namespace created on first start
	AdminUser     string // admin username, empty disables user seeding
	AdminPassword string // admin password, generated when empty
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	JWT       JWT
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	APIPrefix      string // prefix for all api routes, e.g. /v1
	AllowOrigins   string // comma separated CORS origins
}
