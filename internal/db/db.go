// Package db opens the relational database backing the gorm store.
package db

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/dsn"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
)

// Open connects with the configured gorm engine and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	if dialector.Name() == dsn.EngineSQLite {
		if err := ensureDir(cfg.DB.Name); err != nil {
			return nil, err
		}
	}

	logMode := gormlogger.Silent
	if cfg.DevMode {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables used by the store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// ensureDir creates the parent directory of a sqlite database file.
func ensureDir(name string) error {
	if name == "" || name == ":memory:" || strings.HasPrefix(name, "file:") {
		return nil
	}

	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrapf(err, "failed to create database directory %s", dir)
	}

	return nil
}
