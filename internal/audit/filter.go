package audit

import (
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/search"
)

// Filter narrows the audit log view.
type Filter struct {
	Query    string
	Severity string
	Resource string
}

// Match reports whether e passes the filter. The query is matched against
// user, action, resource and details.
func (f Filter) Match(e models.AuditLogEntry) bool {
	return search.MatchesQuery(f.Query, e.User, e.Action, e.Resource, e.Details) &&
		search.MatchesOption(f.Severity, string(e.Severity)) &&
		search.MatchesOption(f.Resource, e.Resource)
}

// FilterEntries returns the entries passing f in their original order.
func FilterEntries(entries []models.AuditLogEntry, f Filter) []models.AuditLogEntry {
	return search.Where(entries, f.Match)
}

// Resources returns the distinct resources in first-seen order.
func Resources(entries []models.AuditLogEntry) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)

	for _, e := range entries {
		if !seen[e.Resource] {
			seen[e.Resource] = true
			out = append(out, e.Resource)
		}
	}

	return out
}
