package models

// Role groups permission names.
// Permissions holds names in the order they were picked and is maintained independently
// from Permission.UsedBy. Users is a denormalized count that is never synchronized with
// the users' role field.
type Role struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	Users       int      `json:"users"`
}

// RoleID returns the role's id.
func RoleID(r Role) uint64 { return r.ID }

// HasPermission reports whether the role lists the permission name.
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p == name {
			return true
		}
	}

	return false
}
