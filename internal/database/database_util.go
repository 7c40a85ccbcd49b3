package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDatabase returns an isolated in-memory database for service tests.
func NewTestDatabase(tb testing.TB, migration bool) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to init db %v", err)
	}

	// a single connection keeps the in-memory database shared across calls
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to init db %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if migration {
		if err := MigrateDB(db); err != nil {
			tb.Fatalf("failed to migrate db %v", err)
		}
	}

	return db
}
