package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string
	// Path is the database file for the sqlite engine (":memory:" is allowed).
	Path string
	// LogLevel is the gorm logger level: silent, error, warn or info.
	LogLevel string
}
