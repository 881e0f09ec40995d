// Package dsn builds the gorm dialector of the configured database engine.
package dsn

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
)

// Create builds the mysql Data Source Name from the configuration.
func Create(dbCfg config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)

	if dbCfg.Extras != "" {
		out += "?" + dbCfg.Extras
	}

	return out
}

// Postgres builds a key=value connection string.
// Extras are appended verbatim, e.g. "sslmode=disable TimeZone=UTC".
func Postgres(dbCfg config.DB) string {
	parts := []string{
		"host=" + dbCfg.Host,
		"user=" + dbCfg.User,
		"password=" + dbCfg.Password,
		"dbname=" + dbCfg.Name,
	}

	if dbCfg.Port != 0 {
		parts = append(parts, fmt.Sprintf("port=%d", dbCfg.Port))
	}

	if dbCfg.Extras != "" {
		parts = append(parts, dbCfg.Extras)
	}

	return strings.Join(parts, " ")
}

// Dialector returns the gorm dialector for dbCfg.GormEngine.
func Dialector(dbCfg config.DB) (gorm.Dialector, error) {
	switch dbCfg.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case config.EnginePostgres:
		return postgres.Open(Postgres(dbCfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dbCfg.Path), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedGormEngine, dbCfg.GormEngine)
	}
}
