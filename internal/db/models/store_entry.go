package models

import "time"

// StoreEntry is one key of the key-value store kept in a relational database.
// Each collection lives in a single row as a JSON array.
type StoreEntry struct {
	// ID is the unique identifier for the row.
	ID uint64 `gorm:"primaryKey"`
	// Key is the collection key, e.g. "rbac-users".
	Key string `gorm:"column:entry_key;uniqueIndex;size:191;not null"`
	// Value is the serialized collection.
	Value []byte
	// UpdatedAt is the timestamp of the last write (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the StoreEntry model.
func (StoreEntry) TableName() string {
	return "store_entries"
}
