// Package store reads and writes JSON collections kept under fixed keys in a
// fiber.Storage backend.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Collection keys.
const (
	KeyUsers       = "rbac-users"
	KeyRoles       = "rbac-roles"
	KeyPermissions = "rbac-permissions"
	KeyAuditLogs   = "rbac-audit-logs"
)

// Keys lists every collection key.
var Keys = []string{KeyUsers, KeyRoles, KeyPermissions, KeyAuditLogs}

// Load returns the collection saved under key. An absent key, a failed read and a
// value that does not parse all yield an empty collection. The latter two are logged
// because the caller cannot tell them apart from a first run.
func Load[T any](storage fiber.Storage, key string) []T {
	items := make([]T, 0)

	raw, err := storage.Get(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read collection, using empty collection")
		return items
	}

	if len(raw) == 0 {
		return items
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored collection does not parse, using empty collection")
		return make([]T, 0)
	}

	if items == nil {
		// a stored "null"
		items = make([]T, 0)
	}

	return items
}

// Save serializes the full collection and overwrites the value under key.
func Save[T any](storage fiber.Storage, key string, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := storage.Set(key, raw, 0); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	return nil
}

// Exists reports whether a non-empty value is stored under key.
func Exists(storage fiber.Storage, key string) bool {
	raw, err := storage.Get(key)

	return err == nil && len(raw) > 0
}

// NextID returns max(existing ids) + 1, or 1 for an empty collection.
func NextID[T any](items []T, id func(T) uint64) uint64 {
	var maxID uint64

	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}

	return maxID + 1
}
