// Package stdlogger adapts the global zerolog logger to printf style logger interfaces,
// e.g. gorm's logger.Writer.
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	component string
	level     zerolog.Level // used by Printf
}

// New returns a Logger whose Printf writes on info level.
func New() *Logger {
	return &Logger{level: zerolog.InfoLevel}
}

// WithComponent tags every entry with a component field.
func (l *Logger) WithComponent(name string) *Logger {
	c := *l
	c.component = name

	return &c
}

// WithLevel sets the level Printf writes on.
func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	c := *l
	c.level = level

	return &c
}

// Printf implements gorm logger.Writer.
func (l *Logger) Printf(format string, v ...any) {
	l.write(l.level, format, v...)
}

// Debugf logs on debug level.
func (l *Logger) Debugf(format string, v ...any) {
	l.write(zerolog.DebugLevel, format, v...)
}

// Infof logs on info level.
func (l *Logger) Infof(format string, v ...any) {
	l.write(zerolog.InfoLevel, format, v...)
}

// Warningf logs on warn level.
func (l *Logger) Warningf(format string, v ...any) {
	l.write(zerolog.WarnLevel, format, v...)
}

// Errorf logs on error level.
func (l *Logger) Errorf(format string, v ...any) {
	l.write(zerolog.ErrorLevel, format, v...)
}

func (l *Logger) write(level zerolog.Level, format string, v ...any) {
	e := log.WithLevel(level)
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	// gorm prefixes multi line output with a newline
	e.Msgf(strings.TrimSpace(format), v...)
}
