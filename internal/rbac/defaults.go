package rbac

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// DefaultUsers returns the users written on first start.
func DefaultUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: "Admin", Status: models.StatusActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: "Editor", Status: models.StatusActive},
		{ID: 3, Name: "Mike Johnson", Email: "mike@example.com", Role: "Viewer", Status: models.StatusInactive},
		{ID: 4, Name: "Sarah Williams", Email: "sarah@example.com", Role: "Editor", Status: models.StatusActive},
	}
}

// DefaultRoles returns the roles written on first start.
func DefaultRoles() []models.Role {
	return []models.Role{
		{ID: 1, Name: "Admin", Description: "Full system access", Permissions: []string{"Create", "Read", "Update", "Delete"}, Users: 8},
		{ID: 2, Name: "Editor", Description: "Can edit content", Permissions: []string{"Create", "Read", "Update"}, Users: 24},
		{ID: 3, Name: "Viewer", Description: "Read-only access", Permissions: []string{"Read"}, Users: 156},
		{ID: 4, Name: "Moderator", Description: "Can moderate content", Permissions: []string{"Read", "Update", "Delete"}, Users: 12},
	}
}

// DefaultPermissions returns the permissions written on first start.
func DefaultPermissions() []models.Permission {
	content := models.CategoryContentManagement

	return []models.Permission{
		{ID: 1, Name: "Create", Description: "Create new resources", Category: content, Status: models.StatusActive, UsedBy: []string{"Admin", "Editor"}},
		{ID: 2, Name: "Read", Description: "View existing resources", Category: content, Status: models.StatusActive, UsedBy: []string{"Admin", "Editor", "Viewer", "Moderator"}},
		{ID: 3, Name: "Update", Description: "Modify existing resources", Category: content, Status: models.StatusActive, UsedBy: []string{"Admin", "Editor", "Moderator"}},
		{ID: 4, Name: "Delete", Description: "Remove resources", Category: content, Status: models.StatusActive, UsedBy: []string{"Admin", "Moderator"}},
		{ID: 5, Name: "Manage Users", Description: "Add, edit, or remove users", Category: models.CategoryUserManagement, Status: models.StatusActive, UsedBy: []string{}},
		{ID: 6, Name: "Manage Roles", Description: "Create and modify roles", Category: models.CategoryUserManagement, Status: models.StatusActive, UsedBy: []string{}},
		{ID: 7, Name: "View Analytics", Description: "Access analytics and reports", Category: models.CategoryAnalytics, Status: models.StatusActive, UsedBy: []string{}},
		{ID: 8, Name: "System Settings", Description: "Modify system configuration", Category: models.CategorySystem, Status: models.StatusInactive, UsedBy: []string{}},
	}
}

// Seed writes the default collection for every absent key and returns the keys it wrote.
// Existing collections, including empty ones, are left untouched. The audit log is
// never seeded.
func Seed(storage fiber.Storage) ([]string, error) {
	seeded := make([]string, 0, 3)

	seeds := []struct {
		key  string
		save func() error
	}{
		{store.KeyUsers, func() error { return store.Save(storage, store.KeyUsers, DefaultUsers()) }},
		{store.KeyRoles, func() error { return store.Save(storage, store.KeyRoles, DefaultRoles()) }},
		{store.KeyPermissions, func() error { return store.Save(storage, store.KeyPermissions, DefaultPermissions()) }},
	}

	for _, s := range seeds {
		if store.Exists(storage, s.key) {
			continue
		}

		if err := s.save(); err != nil {
			return seeded, err
		}

		log.Info().Str("key", s.key).Msg("seeded default collection")

		seeded = append(seeded, s.key)
	}

	return seeded, nil
}
