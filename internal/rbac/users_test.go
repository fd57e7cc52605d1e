package rbac

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

func TestUsersCreateOnEmptyCollection(t *testing.T) {
	svc, s := newTestService(t)

	ann, err := svc.Users.Create(models.User{Name: "Ann", Email: "ann@x.com", Role: "Viewer", Status: models.StatusActive})
	require.NoError(t, err)

	want := []models.User{{ID: 1, Name: "Ann", Email: "ann@x.com", Role: "Viewer", Status: models.StatusActive}}
	assert.Equal(t, want, store.Load[models.User](s, store.KeyUsers))
	assert.Equal(t, want[0], ann)

	logs := auditLog(s)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionCreate, logs[0].Action)
	assert.Equal(t, audit.ResourceUser, logs[0].Resource)
	assert.Equal(t, "Created new user: ann@x.com", logs[0].Details)
	assert.Equal(t, models.SeverityInfo, logs[0].Severity)
	assert.Equal(t, "admin@example.com", logs[0].User)
	assert.Equal(t, "1/2/2024, 09:30:00", logs[0].Timestamp)
}

func TestUsersCreateAssignsMaxPlusOne(t *testing.T) {
	svc, s := newTestService(t)
	s.Put(store.KeyUsers, `[{"id":2,"name":"B"},{"id":7,"name":"G"},{"id":3,"name":"C"}]`)

	u, err := svc.Users.Create(models.User{Name: "Ann", Email: "ann@x.com", Role: "Viewer"})
	require.NoError(t, err)
	assert.Equal(t, uint64(8), u.ID)
	assert.Equal(t, models.StatusActive, u.Status, "empty status defaults to Active")

	users := svc.Users.List()
	require.Len(t, users, 4)
	assert.Equal(t, u, users[3], "appended at the end")
}

func TestUsersUpdate(t *testing.T) {
	svc, s := seeded(t)

	before, err := svc.Users.Get(2)
	require.NoError(t, err)

	updated, err := svc.Users.Update(2, UserUpdate{Role: ptr("Admin")})
	require.NoError(t, err)

	assert.Equal(t, "Admin", updated.Role)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.Status, updated.Status)

	// the other users are untouched
	users := svc.Users.List()
	assert.Equal(t, DefaultUsers()[0], users[0])
	assert.Equal(t, DefaultUsers()[2], users[2])

	logs := auditLog(s)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionUpdate, logs[0].Action)
	assert.Equal(t, models.SeverityWarning, logs[0].Severity)
	assert.Equal(t, "Updated user: jane@example.com", logs[0].Details)
}

func TestUsersUpdateNotFound(t *testing.T) {
	svc, s := seeded(t)
	writes := s.Writes(store.KeyUsers)

	_, err := svc.Users.Update(99, UserUpdate{Name: ptr("Nobody")})
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, writes, s.Writes(store.KeyUsers), "nothing saved")
	assert.Empty(t, auditLog(s))
}

func TestUsersGet(t *testing.T) {
	svc, _ := seeded(t)

	u, err := svc.Users.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "mike@example.com", u.Email)

	_, err = svc.Users.Get(42)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUsersDelete(t *testing.T) {
	svc, s := seeded(t)

	require.NoError(t, svc.Users.Delete(2))
	assert.Equal(t, []uint64{1, 3, 4}, IDs(svc.Users.List(), models.UserID))

	logs := auditLog(s)
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionDelete, logs[0].Action)
	assert.Equal(t, "Deleted user: jane@example.com", logs[0].Details)
	assert.Equal(t, models.SeverityWarning, logs[0].Severity)

	// second delete is a no-op
	writes := s.Writes(store.KeyUsers)
	require.NoError(t, svc.Users.Delete(2))
	assert.Equal(t, []uint64{1, 3, 4}, IDs(svc.Users.List(), models.UserID))
	assert.Equal(t, writes, s.Writes(store.KeyUsers))
	assert.Len(t, auditLog(s), 1)
}

func TestUsersBulk(t *testing.T) {
	tests := []struct {
		name     string
		run      func(*Users, []uint64) error
		ids      []uint64
		wantIDs  []uint64
		status   map[uint64]models.Status
		action   string
		details  string
		severity models.Severity
	}{
		{
			name:     "activate",
			run:      (*Users).BulkActivate,
			ids:      []uint64{3, 4},
			wantIDs:  []uint64{1, 2, 3, 4},
			status:   map[uint64]models.Status{3: models.StatusActive, 4: models.StatusActive, 1: models.StatusActive},
			action:   audit.ActionBulkActivate,
			details:  "Activated 2 users",
			severity: models.SeverityInfo,
		},
		{
			name:     "deactivate",
			run:      (*Users).BulkDeactivate,
			ids:      []uint64{1, 2, 4},
			wantIDs:  []uint64{1, 2, 3, 4},
			status:   map[uint64]models.Status{1: models.StatusInactive, 2: models.StatusInactive, 4: models.StatusInactive},
			action:   audit.ActionBulkDeactivate,
			details:  "Deactivated 3 users",
			severity: models.SeverityWarning,
		},
		{
			name:     "delete",
			run:      (*Users).BulkDelete,
			ids:      []uint64{1, 3},
			wantIDs:  []uint64{2, 4},
			action:   audit.ActionBulkDelete,
			details:  "Deleted 2 users",
			severity: models.SeverityCritical,
		},
		{
			name:     "delete one",
			run:      (*Users).BulkDelete,
			ids:      []uint64{4, 4},
			wantIDs:  []uint64{1, 2, 3},
			action:   audit.ActionBulkDelete,
			details:  "Deleted 1 user",
			severity: models.SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s := seeded(t)

			require.NoError(t, tt.run(svc.Users, tt.ids))

			users := svc.Users.List()
			assert.Equal(t, tt.wantIDs, IDs(users, models.UserID))

			for _, u := range users {
				if want, ok := tt.status[u.ID]; ok {
					assert.Equal(t, want, u.Status, "user %d", u.ID)
				}
			}

			logs := auditLog(s)
			require.Len(t, logs, 1, "exactly one aggregate entry")
			assert.Equal(t, tt.action, logs[0].Action)
			assert.Equal(t, tt.details, logs[0].Details)
			assert.Equal(t, tt.severity, logs[0].Severity)
		})
	}
}

func TestUsersBulkEmpty(t *testing.T) {
	svc, s := seeded(t)
	writes := s.Writes(store.KeyUsers)

	require.NoError(t, svc.Users.BulkDelete(nil))
	require.NoError(t, svc.Users.BulkActivate([]uint64{}))

	assert.Equal(t, writes, s.Writes(store.KeyUsers))
	assert.Empty(t, auditLog(s))
}

func TestUsersToggleStatus(t *testing.T) {
	svc, s := seeded(t)

	u, err := svc.Users.ToggleStatus(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, u.Status)

	u, err = svc.Users.ToggleStatus(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, u.Status)

	logs := auditLog(s)
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionStatusChange, logs[0].Action)
	assert.Equal(t, "Activated user: john@example.com", logs[0].Details)
	assert.Equal(t, models.SeverityInfo, logs[0].Severity)
	assert.Equal(t, "Deactivated user: john@example.com", logs[1].Details)
	assert.Equal(t, models.SeverityWarning, logs[1].Severity)

	_, err = svc.Users.ToggleStatus(50)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUsersSaveError(t *testing.T) {
	svc, s := seeded(t)
	errWrite := errors.New("write failed")
	s.FailWrites(store.KeyUsers, errWrite)

	_, err := svc.Users.Create(models.User{Name: "Ann", Email: "ann@x.com"})
	require.ErrorIs(t, err, errWrite)
	assert.Empty(t, auditLog(s), "failed writes are not audited")
}

func TestUsersAuditError(t *testing.T) {
	svc, s := seeded(t)
	errWrite := errors.New("audit write failed")
	s.FailWrites(store.KeyAuditLogs, errWrite)

	err := svc.Users.Delete(1)
	require.ErrorIs(t, err, errWrite)

	// the collection itself was written
	assert.Equal(t, []uint64{2, 3, 4}, IDs(svc.Users.List(), models.UserID))
}

func TestUsersConcurrentCreate(t *testing.T) {
	svc, s := newTestService(t)

	const n = 40

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := svc.Users.Create(models.User{Name: fmt.Sprint(i), Email: fmt.Sprintf("u%d@x.com", i)})
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	users := svc.Users.List()
	require.Len(t, users, n, "no create may be lost within one process")

	seen := make(map[uint64]bool)
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}

	assert.Len(t, auditLog(s), n)
}

func TestLostUpdateAcrossServices(t *testing.T) {
	// Two services sharing one backend model two processes: each holds its own lock,
	// so interleaved load-modify-save cycles lose a write.
	first, s := newTestService(t)
	second := New(s, first.Audit)

	stale := store.Load[models.User](s, store.KeyUsers)

	_, err := first.Users.Create(models.User{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	stale = append(stale, models.User{ID: store.NextID(stale, models.UserID), Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, store.Save(s, store.KeyUsers, stale))

	users := second.Users.List()
	require.Len(t, users, 1, "last writer wins")
	assert.Equal(t, "Bob", users[0].Name)
}
