// Package audit keeps the reverse-chronological audit trail of mutating actions.
package audit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// TimestampLayout formats entry timestamps as month/day/year with a 24-hour clock.
const TimestampLayout = "1/2/2006, 15:04:05"

// Actions written by the collections.
const (
	ActionCreate         = "Create"
	ActionUpdate         = "Update"
	ActionDelete         = "Delete"
	ActionBulkActivate   = "Bulk Activate"
	ActionBulkDeactivate = "Bulk Deactivate"
	ActionBulkDelete     = "Bulk Delete"
	ActionStatusChange   = "Status Change"
)

// Resources written by the collections.
const (
	ResourceUser       = "User"
	ResourceRole       = "Role"
	ResourcePermission = "Permission"
)

// Writer appends entries to the log stored under store.KeyAuditLogs.
type Writer struct {
	mu      sync.Mutex
	storage fiber.Storage
	actor   string
	now     func() time.Time
}

// New returns a Writer recording actor as the user of every entry.
func New(storage fiber.Storage, actor string) *Writer {
	return &Writer{
		storage: storage,
		actor:   actor,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for timestamps.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Actor returns the identity written to entries.
func (w *Writer) Actor() string {
	return w.actor
}

// Append loads the log, puts a new entry at the front and saves the whole log.
// An empty severity is recorded as Info. The log is never trimmed.
func (w *Writer) Append(action, resource, details string, severity models.Severity) (models.AuditLogEntry, error) {
	if severity == "" {
		severity = models.SeverityInfo
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	logs := store.Load[models.AuditLogEntry](w.storage, store.KeyAuditLogs)

	entry := models.AuditLogEntry{
		ID:        store.NextID(logs, models.AuditLogEntryID),
		Timestamp: w.now().Format(TimestampLayout),
		User:      w.actor,
		Action:    action,
		Resource:  resource,
		Details:   details,
		Severity:  severity,
	}

	logs = append([]models.AuditLogEntry{entry}, logs...)

	if err := store.Save(w.storage, store.KeyAuditLogs, logs); err != nil {
		return models.AuditLogEntry{}, err
	}

	entriesTotal.WithLabelValues(resource, string(severity)).Inc()

	log.Debug().
		Uint64("id", entry.ID).
		Str("action", action).
		Str("resource", resource).
		Str("severity", string(severity)).
		Msg(details)

	return entry, nil
}

// Entries returns the whole log, newest first.
func (w *Writer) Entries() []models.AuditLogEntry {
	return store.Load[models.AuditLogEntry](w.storage, store.KeyAuditLogs)
}

// Recent returns at most n entries, newest first.
func (w *Writer) Recent(n int) []models.AuditLogEntry {
	entries := w.Entries()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}

	return entries
}
