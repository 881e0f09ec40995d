// Package daemon wires configuration, database and web service into a running process.
package daemon

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web"
)

// ErrNilConfig is returned by New without configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	done := make(chan error, 1)

	go func() {
		done <- d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
	}()

	d.webService.WaitShutdown()

	return <-done
}

// New opens and migrates the database, seeds it and creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	conn, err := Prepare(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, conn)
	if err != nil {
		return nil, err
	}

	return &Daemon{cfg: cfg, webService: webService}, nil
}

// Prepare opens the configured database, migrates the schema and seeds it.
func Prepare(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(conn); err != nil {
		return nil, err
	}

	if err := Seed(ctx, conn, cfg.Seed); err != nil {
		return nil, err
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	return conn, nil
}
