package rbac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store/storetest"
)

func newTestService(t *testing.T) (*Service, *storetest.Storage) {
	t.Helper()

	s := storetest.New()
	w := audit.New(s, "admin@example.com").WithClock(func() time.Time {
		return time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC)
	})

	return New(s, w), s
}

// seeded returns a service whose collections hold the defaults.
func seeded(t *testing.T) (*Service, *storetest.Storage) {
	t.Helper()

	svc, s := newTestService(t)
	_, err := Seed(s)
	require.NoError(t, err)

	return svc, s
}

func auditLog(s *storetest.Storage) []models.AuditLogEntry {
	return store.Load[models.AuditLogEntry](s, store.KeyAuditLogs)
}

func ptr[T any](v T) *T { return &v }
