package rbac

import (
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/search"
)

// UserFilter narrows the users view. The query matches name and email.
type UserFilter struct {
	Query  string
	Role   string
	Status string
}

// Match reports whether u passes the filter.
func (f UserFilter) Match(u models.User) bool {
	return search.MatchesQuery(f.Query, u.Name, u.Email) &&
		search.MatchesOption(f.Role, u.Role) &&
		search.MatchesOption(f.Status, string(u.Status))
}

// RoleFilter narrows the roles view. The query matches name and description.
type RoleFilter struct {
	Query string
}

// Match reports whether r passes the filter.
func (f RoleFilter) Match(r models.Role) bool {
	return search.MatchesQuery(f.Query, r.Name, r.Description)
}

// PermissionFilter narrows the permissions view. The query matches name and description.
type PermissionFilter struct {
	Query    string
	Category string
	Status   string
}

// Match reports whether p passes the filter.
func (f PermissionFilter) Match(p models.Permission) bool {
	return search.MatchesQuery(f.Query, p.Name, p.Description) &&
		search.MatchesOption(f.Category, string(p.Category)) &&
		search.MatchesOption(f.Status, string(p.Status))
}

// FilterUsers returns the users passing f in stored order.
func FilterUsers(users []models.User, f UserFilter) []models.User {
	return search.Where(users, f.Match)
}

// FilterRoles returns the roles passing f in stored order.
func FilterRoles(roles []models.Role, f RoleFilter) []models.Role {
	return search.Where(roles, f.Match)
}

// FilterPermissions returns the permissions passing f in stored order.
func FilterPermissions(perms []models.Permission, f PermissionFilter) []models.Permission {
	return search.Where(perms, f.Match)
}

// CategoryGroup is the permissions of one category in stored order.
type CategoryGroup struct {
	Category    models.Category
	Permissions []models.Permission
}

// GroupByCategory groups perms by category. Groups appear in the order their
// category is first seen.
func GroupByCategory(perms []models.Permission) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := make(map[models.Category]int)

	for _, p := range perms {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, CategoryGroup{Category: p.Category})
		}

		groups[i].Permissions = append(groups[i].Permissions, p)
	}

	return groups
}

// IDs returns the ids of items in order.
func IDs[T any](items []T, id func(T) uint64) []uint64 {
	out := make([]uint64, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}

	return out
}
