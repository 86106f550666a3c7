// Package dbtest opens migrated in-memory databases for usecase tests.
package dbtest

import (
	"testing"

	"coop-loan-backend/internal/adapter/repository/mysql"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates an in-memory sqlite DB with the full schema. A single
// connection keeps every query on the same in-memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := mysql.Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// UoW returns a unit of work over a fresh database together with the root handle.
func UoW(t testing.TB) (*mysql.GormUoW, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return mysql.NewGormUoW(db), db
}
