package rbac

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by every lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrRoleNotFound is returned when no role has the requested id.
	ErrRoleNotFound = fmt.Errorf("role %w", ErrNotFound)
	// ErrPermissionNotFound is returned when no permission has the requested id.
	ErrPermissionNotFound = fmt.Errorf("permission %w", ErrNotFound)
	// ErrPermissionInUse is matched by InUseError.
	ErrPermissionInUse = errors.New("permission is used by roles")
)

// Usage names the roles listed in a permission's usedBy.
type Usage struct {
	PermissionID uint64
	Permission   string
	Roles        []string
}

// InUseError is returned when deleting permissions that roles still use
// and the caller has not confirmed.
type InUseError struct {
	Usages []Usage
}

// Error implements the error interface.
func (e *InUseError) Error() string {
	parts := make([]string, 0, len(e.Usages))
	for _, u := range e.Usages {
		parts = append(parts, fmt.Sprintf("%s (%s)", u.Permission, strings.Join(u.Roles, ", ")))
	}

	return ErrPermissionInUse.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrPermissionInUse) match.
func (e *InUseError) Is(target error) bool {
	return target == ErrPermissionInUse
}

// Roles returns the distinct role names across all usages in first-seen order.
func (e *InUseError) Roles() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)

	for _, u := range e.Usages {
		for _, r := range u.Roles {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}

	return out
}
