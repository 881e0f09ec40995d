// Package db opens and migrates the ACL database.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/dsn"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	"github.com/GoACL-Admin/GoACL-Admin/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open connects to the configured engine.
// Unique violations are translated to gorm.ErrDuplicatedKey.
func Open(cfg config.DB) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.GormEngine, err)
	}

	// an in memory sqlite database lives per connection
	if cfg.GormEngine == config.EngineSQLite && strings.Contains(cfg.Path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates all ACL tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	return nil
}

func newLogger(level string) gormlogger.Interface {
	var (
		lvl      gormlogger.LogLevel
		printLvl = zerolog.DebugLevel
	)

	switch strings.ToLower(level) {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
		printLvl = zerolog.ErrorLevel
	case "info":
		lvl = gormlogger.Info
	default:
		lvl = gormlogger.Warn
		printLvl = zerolog.WarnLevel
	}

	return gormlogger.New(stdlogger.New().WithComponent("gorm").WithLevel(printLvl), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
