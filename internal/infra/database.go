package infra

import (
	"fmt"
	"strings"

	"fuelpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the store named by dsn and migrates the schema.
// A postgres:// or postgresql:// URL selects Postgres; anything else is a
// SQLite file path (":memory:" works for tests).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isPostgres(dsn) {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	} else {
		// SQLite allows one writer; a single connection also keeps
		// ":memory:" databases alive for the process lifetime.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates missing tables and indexes. Safe to run on every start.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.FuelType{},
		&model.Pump{},
		&model.Price{},
		&model.Shift{},
		&model.Transaction{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgres(dsn) {
		return postgres.Open(dsn)
	}
	path := strings.TrimPrefix(dsn, "sqlite://")
	if path != ":memory:" && !strings.Contains(path, "?") {
		path += "?_foreign_keys=on&_busy_timeout=5000"
	}
	return sqlite.Open(path)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
