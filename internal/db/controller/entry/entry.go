// Package entry provides CRUD operations for key-value store entries kept with gorm.
package entry

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
)

const (
	keyQueryPattern = "entry_key = ?"
)

var (
	// ErrEntryNotFound is returned when no entry exists for a key.
	ErrEntryNotFound = errors.New("store entry not found")
	// ErrEntryKeyEmpty is returned when attempting to read or write an empty key.
	ErrEntryKeyEmpty = errors.New("store entry key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves an entry by its key.
func Get(db *gorm.DB, key string) (*models.StoreEntry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrEntryKeyEmpty
	}

	var entry models.StoreEntry

	result := db.Where(keyQueryPattern, key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

// Keys returns the keys of all entries ordered by key.
func Keys(db *gorm.DB) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var keys []string
	if err := db.Model(&models.StoreEntry{}).Order("entry_key").Pluck("entry_key", &keys).Error; err != nil {
		return nil, err
	}

	return keys, nil
}

// Set creates or overwrites the entry for key (upsert operation).
func Set(db *gorm.DB, key string, value []byte) (*models.StoreEntry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrEntryKeyEmpty
	}

	var entry models.StoreEntry

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(keyQueryPattern, key).First(&entry)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			entry = models.StoreEntry{Key: key, Value: value}
			return tx.Create(&entry).Error
		case result.Error != nil:
			return result.Error
		}

		entry.Value = value

		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Delete deletes the entry for key.
func Delete(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrEntryKeyEmpty
	}

	result := db.Where(keyQueryPattern, key).Delete(&models.StoreEntry{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// DeleteAll removes every entry.
func DeleteAll(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StoreEntry{}).Error
}
