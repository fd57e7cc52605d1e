package store

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/controller/entry"
)

// Ensure GormStorage implements the fiber.Storage interface.
var _ fiber.Storage = (*GormStorage)(nil)

// GormStorage keeps values in the store_entries table.
type GormStorage struct {
	db *gorm.DB
}

// NewGorm wraps an open and migrated database.
func NewGorm(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// Get returns the value for key, or nil when absent.
func (s *GormStorage) Get(key string) ([]byte, error) {
	e, err := entry.Get(s.db, key)
	if err != nil {
		if errors.Is(err, entry.ErrEntryNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return e.Value, nil
}

// Set overwrites the value for key. Expiration is not supported and ignored.
func (s *GormStorage) Set(key string, val []byte, _ time.Duration) error {
	_, err := entry.Set(s.db, key, val)

	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *GormStorage) Delete(key string) error {
	if err := entry.Delete(s.db, key); err != nil && !errors.Is(err, entry.ErrEntryNotFound) {
		return err
	}

	return nil
}

// Reset removes every entry.
func (s *GormStorage) Reset() error {
	return entry.DeleteAll(s.db)
}

// Close closes the underlying connection pool.
func (s *GormStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
