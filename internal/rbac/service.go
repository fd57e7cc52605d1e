// Package rbac manages the users, roles and permissions collections. Every mutation
// rewrites the whole collection and appends one audit entry.
package rbac

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
)

// AdminRole is the role name counted as administrator on the dashboard.
const AdminRole = "Admin"

// recentActivity is the number of audit entries shown on the dashboard.
const recentActivity = 5

// Service bundles the collections sharing one storage and audit log.
type Service struct {
	Users       *Users
	Roles       *Roles
	Permissions *Permissions
	Audit       *audit.Writer
}

// New returns the collections kept in storage, audited by log.
func New(storage fiber.Storage, log *audit.Writer) *Service {
	return &Service{
		Users:       NewUsers(storage, log),
		Roles:       NewRoles(storage, log),
		Permissions: NewPermissions(storage, log),
		Audit:       log,
	}
}

// Stats holds the dashboard figures.
type Stats struct {
	TotalUsers        int
	Roles             int
	ActivePermissions int
	AdminUsers        int
	RecentActivity    []models.AuditLogEntry
}

// Stats computes the dashboard figures from the stored collections.
func (s *Service) Stats() Stats {
	users := s.Users.List()

	stats := Stats{
		TotalUsers:     len(users),
		Roles:          len(s.Roles.List()),
		RecentActivity: s.Audit.Recent(recentActivity),
	}

	for _, u := range users {
		if u.Role == AdminRole {
			stats.AdminUsers++
		}
	}

	for _, p := range s.Permissions.List() {
		if p.Status == models.StatusActive {
			stats.ActivePermissions++
		}
	}

	return stats
}
