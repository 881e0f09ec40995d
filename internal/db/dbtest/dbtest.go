// Package dbtest provides an in-memory sqlite database for package tests.
package dbtest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db"
)

// Clock is a manually advanced time source for gorm.Config.NowFunc.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Open returns a migrated in-memory database driven by clock.
func Open(t *testing.T, clock *Clock) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(config.DB{GormEngine: config.EngineSQLite, Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err, "failed to create test database")

	gdb.NowFunc = clock.Now

	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
