package models

// Category is the fixed grouping a permission belongs to.
type Category string

const (
	// CategoryContentManagement covers create/read/update/delete of content.
	CategoryContentManagement Category = "Content Management"
	// CategoryUserManagement covers user and role administration.
	CategoryUserManagement Category = "User Management"
	// CategoryAnalytics covers analytics and reports.
	CategoryAnalytics Category = "Analytics"
	// CategorySystem covers system configuration.
	CategorySystem Category = "System"
)

// Categories lists every category in display order.
var Categories = []Category{ //nolint:gochecknoglobals
	CategoryContentManagement,
	CategoryUserManagement,
	CategoryAnalytics,
	CategorySystem,
}

// Permission is a named capability a role can list.
// UsedBy is a hand-maintained list of role names; it is not derived from Role.Permissions.
type Permission struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	UsedBy      []string `json:"usedBy"`
}

// PermissionID returns the permission's id.
func PermissionID(p Permission) uint64 { return p.ID }
