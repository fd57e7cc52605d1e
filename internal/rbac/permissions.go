package rbac

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// PermissionUpdate lists the permission fields an update may change. Nil fields are kept.
type PermissionUpdate struct {
	Name        *string
	Description *string
	Category    *models.Category
	Status      *models.Status
	UsedBy      *[]string
}

// Permissions manages the rbac-permissions collection.
type Permissions struct {
	collection[models.Permission]
}

// NewPermissions returns the permissions collection kept in storage and audited by log.
func NewPermissions(storage fiber.Storage, log *audit.Writer) *Permissions {
	return &Permissions{
		collection: collection[models.Permission]{
			storage:        storage,
			log:            log,
			key:            store.KeyPermissions,
			resource:       audit.ResourcePermission,
			noun:           "permission",
			nouns:          "permissions",
			updateVerb:     "Modified",
			deleteSeverity: models.SeverityCritical,
			errNotFound:    ErrPermissionNotFound,
			idOf:           models.PermissionID,
			setID:          func(p *models.Permission, id uint64) { p.ID = id },
			label:          func(p models.Permission) string { return p.Name },
			statusOf:       func(p *models.Permission) *models.Status { return &p.Status },
		},
	}
}

// Create appends draft under the next id. An empty status is stored as Active.
func (p *Permissions) Create(draft models.Permission) (models.Permission, error) {
	if draft.Status == "" {
		draft.Status = models.StatusActive
	}

	if draft.UsedBy == nil {
		draft.UsedBy = make([]string, 0)
	}

	return p.create(draft)
}

// Update applies the non-nil fields of upd to the permission with id.
func (p *Permissions) Update(id uint64, upd PermissionUpdate) (models.Permission, error) {
	return p.update(id, func(perm *models.Permission) {
		if upd.Name != nil {
			perm.Name = *upd.Name
		}

		if upd.Description != nil {
			perm.Description = *upd.Description
		}

		if upd.Category != nil {
			perm.Category = *upd.Category
		}

		if upd.Status != nil {
			perm.Status = *upd.Status
		}

		if upd.UsedBy != nil {
			perm.UsedBy = slices.Clone(*upd.UsedBy)
		}
	})
}

// Delete removes the permission with id. When its usedBy list is not empty the
// caller must confirm, otherwise an InUseError is returned and nothing changes.
// Roles listing the permission are never modified.
func (p *Permissions) Delete(id uint64, confirmed bool) error {
	return p.remove([]uint64{id}, false, requireConfirmation(confirmed))
}

// BulkActivate activates every permission in ids with a single audit entry.
func (p *Permissions) BulkActivate(ids []uint64) error {
	return p.bulkSetStatus(ids, models.StatusActive)
}

// BulkDeactivate deactivates every permission in ids with a single audit entry.
func (p *Permissions) BulkDeactivate(ids []uint64) error {
	return p.bulkSetStatus(ids, models.StatusInactive)
}

// BulkDelete removes every permission in ids with a single audit entry. It needs
// confirmation when any of them is used by a role.
func (p *Permissions) BulkDelete(ids []uint64, confirmed bool) error {
	return p.remove(ids, true, requireConfirmation(confirmed))
}

// ToggleStatus flips the permission between Active and Inactive.
func (p *Permissions) ToggleStatus(id uint64) (models.Permission, error) {
	return p.toggle(id)
}

// Names returns the permission names in stored order.
func (p *Permissions) Names() []string {
	perms := p.List()
	names := make([]string, 0, len(perms))

	for _, perm := range perms {
		names = append(names, perm.Name)
	}

	return names
}

// Usages returns the usage of every permission in ids that lists at least one role.
func (p *Permissions) Usages(ids []uint64) []Usage {
	perms := p.List()
	usages := make([]Usage, 0)

	for _, perm := range perms {
		if slices.Contains(ids, perm.ID) && len(perm.UsedBy) > 0 {
			usages = append(usages, usageOf(perm))
		}
	}

	return usages
}

func usageOf(perm models.Permission) Usage {
	return Usage{
		PermissionID: perm.ID,
		Permission:   perm.Name,
		Roles:        slices.Clone(perm.UsedBy),
	}
}

func requireConfirmation(confirmed bool) func([]models.Permission) error {
	return func(perms []models.Permission) error {
		if confirmed {
			return nil
		}

		usages := make([]Usage, 0)

		for _, perm := range perms {
			if len(perm.UsedBy) > 0 {
				usages = append(usages, usageOf(perm))
			}
		}

		if len(usages) > 0 {
			return &InUseError{Usages: usages}
		}

		return nil
	}
}
