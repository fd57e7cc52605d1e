// Package models contains the persisted entity shapes.
package models

// Status is the activation state of users and permissions.
type Status string

const (
	// StatusActive marks an enabled entity.
	StatusActive Status = "Active"
	// StatusInactive marks a disabled entity.
	StatusInactive Status = "Inactive"
)

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}

	return StatusActive
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}
