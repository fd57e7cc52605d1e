package rbac

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

// UserUpdate lists the user fields an update may change. Nil fields are kept.
type UserUpdate struct {
	Name   *string
	Email  *string
	Role   *string
	Status *models.Status
}

// Users manages the rbac-users collection.
type Users struct {
	collection[models.User]
}

// NewUsers returns the users collection kept in storage and audited by log.
func NewUsers(storage fiber.Storage, log *audit.Writer) *Users {
	return &Users{
		collection: collection[models.User]{
			storage:        storage,
			log:            log,
			key:            store.KeyUsers,
			resource:       audit.ResourceUser,
			noun:           "user",
			nouns:          "users",
			updateVerb:     "Updated",
			deleteSeverity: models.SeverityWarning,
			errNotFound:    ErrUserNotFound,
			idOf:           models.UserID,
			setID:          func(u *models.User, id uint64) { u.ID = id },
			label:          func(u models.User) string { return u.Email },
			statusOf:       func(u *models.User) *models.Status { return &u.Status },
		},
	}
}

// Create appends draft under the next id. An empty status is stored as Active.
func (u *Users) Create(draft models.User) (models.User, error) {
	if draft.Status == "" {
		draft.Status = models.StatusActive
	}

	return u.create(draft)
}

// Update applies the non-nil fields of upd to the user with id.
func (u *Users) Update(id uint64, upd UserUpdate) (models.User, error) {
	return u.update(id, func(user *models.User) {
		if upd.Name != nil {
			user.Name = *upd.Name
		}

		if upd.Email != nil {
			user.Email = *upd.Email
		}

		if upd.Role != nil {
			user.Role = *upd.Role
		}

		if upd.Status != nil {
			user.Status = *upd.Status
		}
	})
}

// Delete removes the user with id. Deleting a missing id does nothing.
func (u *Users) Delete(id uint64) error {
	return u.remove([]uint64{id}, false, nil)
}

// BulkActivate activates every user in ids with a single audit entry.
func (u *Users) BulkActivate(ids []uint64) error {
	return u.bulkSetStatus(ids, models.StatusActive)
}

// BulkDeactivate deactivates every user in ids with a single audit entry.
func (u *Users) BulkDeactivate(ids []uint64) error {
	return u.bulkSetStatus(ids, models.StatusInactive)
}

// BulkDelete removes every user in ids with a single audit entry.
func (u *Users) BulkDelete(ids []uint64) error {
	return u.remove(ids, true, nil)
}

// ToggleStatus flips the user between Active and Inactive.
func (u *Users) ToggleStatus(id uint64) (models.User, error) {
	return u.toggle(id)
}
