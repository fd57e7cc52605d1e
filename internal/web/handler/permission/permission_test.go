package permission

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler/handlertest"
)

func newEnv(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	svc := &Service{}
	svc.Init(env.App, env.Config, env.RBAC)

	return env
}

func TestListGroupsByCategory(t *testing.T) {
	env := newEnv(t)

	resp, body := env.Get(t, Path+"?status=Active")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, body)

	_, bindings := env.Views.Last()
	data := bindings["Data"].(ListData)

	assert.Equal(t, 7, data.Count)
	assert.Equal(t, 8, data.Total)
	require.Len(t, data.Groups, 3, "System holds only an inactive permission")
	assert.Equal(t, models.CategoryContentManagement, data.Groups[0].Category)
	assert.Len(t, data.Groups[0].Permissions, 4)
	assert.Equal(t, models.CategoryUserManagement, data.Groups[1].Category)
	assert.Equal(t, models.CategoryAnalytics, data.Groups[2].Category)
}

func TestListSelectAll(t *testing.T) {
	env := newEnv(t)

	_, _ = env.Get(t, Path+"?category=User+Management&toggleAll=1")

	_, bindings := env.Views.Last()
	data := bindings["Data"].(ListData)
	assert.Equal(t, map[uint64]bool{5: true, 6: true}, data.Selected)
	assert.True(t, data.AllSelected)
}

func TestCreate(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, Path, url.Values{
		"name":        {"Export"},
		"description": {"Export data"},
		"category":    {"Analytics"},
		"status":      {"Active"},
		"usedBy":      {"Admin"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	p, err := env.RBAC.Permissions.Get(9)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryAnalytics, p.Category)
	assert.Equal(t, []string{"Admin"}, p.UsedBy)
}

func TestCreateInvalidCategory(t *testing.T) {
	env := newEnv(t)

	resp, body := env.PostForm(t, Path, url.Values{
		"name":        {"Export"},
		"description": {"Export data"},
		"category":    {"Finance"},
		"status":      {"Active"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Field 'Category' failed validation tag 'oneof'")

	resp, _ = env.PostForm(t, Path, url.Values{
		"name":        {"Export"},
		"description": {"Export data"},
		"category":    {"User Management"},
		"status":      {"Active"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, "quoted categories with spaces are accepted")
}

func TestUpdate(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, Path+"/8", url.Values{
		"name":        {"System Settings"},
		"description": {"Modify system configuration"},
		"category":    {"System"},
		"status":      {"Active"},
	})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	p, err := env.RBAC.Permissions.Get(8)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, p.Status)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	env := newEnv(t)

	resp, body := env.PostForm(t, Path+"/4/delete", url.Values{})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, ConfirmTemplateName, body)

	_, bindings := env.Views.Last()
	data := bindings["Data"].(ConfirmData)
	assert.Equal(t, []string{"Admin", "Moderator"}, data.Roles)
	assert.Equal(t, "/permissions/4/delete", data.Action)
	assert.Len(t, env.RBAC.Permissions.List(), 8)

	resp, _ = env.PostForm(t, Path+"/4/delete", url.Values{"confirm": {"true"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.NotContains(t, env.RBAC.Permissions.Names(), "Delete")

	admin, err := env.RBAC.Roles.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Create", "Read", "Update", "Delete"}, admin.Permissions, "roles keep the deleted permission")
}

func TestDeleteUnused(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, Path+"/8/delete", url.Values{})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Len(t, env.RBAC.Permissions.List(), 7)
}

func TestToggle(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, Path+"/8/toggle", url.Values{"category": {"System"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/permissions?category=System", resp.Header.Get(fiber.HeaderLocation))

	p, err := env.RBAC.Permissions.Get(8)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, p.Status)
}

func TestBulk(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.PostForm(t, Path+"/bulk", url.Values{"action": {"deactivate"}, "ids": {"5", "6", "7"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 4, env.RBAC.Stats().ActivePermissions)

	resp, _ = env.PostForm(t, Path+"/bulk", url.Values{"action": {"delete"}, "ids": {"1", "5"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	_, bindings := env.Views.Last()
	data := bindings["Data"].(ConfirmData)
	assert.Equal(t, []uint64{1, 5}, data.IDs)
	assert.Equal(t, "/permissions/bulk", data.Action)

	resp, _ = env.PostForm(t, Path+"/bulk", url.Values{"action": {"delete"}, "ids": {"1", "5"}, "confirm": {"true"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []uint64{2, 3, 4, 6, 7, 8}, rbac.IDs(env.RBAC.Permissions.List(), models.PermissionID))

	entries := env.RBAC.Audit.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Deleted 2 permissions", entries[0].Details)
}
