package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

func TestSeed(t *testing.T) {
	svc, s := newTestService(t)

	keys, err := Seed(s)
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyUsers, store.KeyRoles, store.KeyPermissions}, keys)

	assert.Equal(t, DefaultUsers(), svc.Users.List())
	assert.Equal(t, DefaultRoles(), svc.Roles.List())
	assert.Equal(t, DefaultPermissions(), svc.Permissions.List())
	assert.False(t, store.Exists(s, store.KeyAuditLogs))

	// second run keeps what is there
	require.NoError(t, svc.Users.Delete(1))

	keys, err = Seed(s)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Len(t, svc.Users.List(), 3)
}

func TestSeedKeepsEmptyCollections(t *testing.T) {
	svc, s := newTestService(t)
	s.Put(store.KeyRoles, `[]`)

	keys, err := Seed(s)
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyUsers, store.KeyPermissions}, keys)
	assert.Empty(t, svc.Roles.List())
}

func TestStats(t *testing.T) {
	svc, _ := seeded(t)

	stats := svc.Stats()
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 4, stats.Roles)
	assert.Equal(t, 7, stats.ActivePermissions)
	assert.Equal(t, 1, stats.AdminUsers)
	assert.Empty(t, stats.RecentActivity)

	for i := range 7 {
		_, err := svc.Users.Create(models.User{Name: "U", Email: "u@x.com", Role: AdminRole})
		require.NoError(t, err, "create %d", i)
	}

	stats = svc.Stats()
	assert.Equal(t, 11, stats.TotalUsers)
	assert.Equal(t, 8, stats.AdminUsers)
	require.Len(t, stats.RecentActivity, 5)
	assert.Equal(t, uint64(7), stats.RecentActivity[0].ID)
}
