// Package testutil provides an in-memory store for package tests.
package testutil

import (
	"testing"

	"github.com/navhub-dev/navhub/db"
	"github.com/navhub-dev/navhub/internal/config"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when
// the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.Open(config.DatabaseConfig{Driver: db.DriverSQLite, Path: ":memory:"}, false)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return conn
}
