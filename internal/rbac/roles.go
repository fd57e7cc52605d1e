package rbac

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// RoleUpdate lists the role fields an update may change. Nil fields are kept.
// The users count is not editable.
type RoleUpdate struct {
	Name        *string
	Description *string
	Permissions *[]string
}

// Roles manages the rbac-roles collection. Roles have no status.
type Roles struct {
	collection[models.Role]
}

// NewRoles returns the roles collection kept in storage and audited by log.
func NewRoles(storage fiber.Storage, log *audit.Writer) *Roles {
	return &Roles{
		collection: collection[models.Role]{
			storage:        storage,
			log:            log,
			key:            store.KeyRoles,
			resource:       audit.ResourceRole,
			noun:           "role",
			nouns:          "roles",
			updateVerb:     "Modified",
			deleteSeverity: models.SeverityWarning,
			errNotFound:    ErrRoleNotFound,
			idOf:           models.RoleID,
			setID:          func(r *models.Role, id uint64) { r.ID = id },
			label:          func(r models.Role) string { return r.Name },
		},
	}
}

// Create appends draft under the next id with a users count of zero.
func (r *Roles) Create(draft models.Role) (models.Role, error) {
	draft.Users = 0
	if draft.Permissions == nil {
		draft.Permissions = make([]string, 0)
	}

	return r.create(draft)
}

// Update applies the non-nil fields of upd to the role with id.
// Users and permissions referring to the old name are not rewritten.
func (r *Roles) Update(id uint64, upd RoleUpdate) (models.Role, error) {
	return r.update(id, func(role *models.Role) {
		if upd.Name != nil {
			role.Name = *upd.Name
		}

		if upd.Description != nil {
			role.Description = *upd.Description
		}

		if upd.Permissions != nil {
			role.Permissions = slices.Clone(*upd.Permissions)
		}
	})
}

// Delete removes the role with id. Users keep the role name and permissions keep it
// in their usedBy list.
func (r *Roles) Delete(id uint64) error {
	return r.remove([]uint64{id}, false, nil)
}

// BulkDelete removes every role in ids with a single audit entry.
func (r *Roles) BulkDelete(ids []uint64) error {
	return r.remove(ids, true, nil)
}

// Names returns the role names in stored order.
func (r *Roles) Names() []string {
	roles := r.List()
	names := make([]string, 0, len(roles))

	for _, role := range roles {
		names = append(names, role.Name)
	}

	return names
}
