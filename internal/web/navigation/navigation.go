// Package navigation provides utilities for managing navigation state and breadcrumbs.
package navigation

// Sections of the sidebar, one per top-level view.
const (
	SectionDashboard   = "dashboard"
	SectionUsers       = "users"
	SectionRoles       = "roles"
	SectionPermissions = "permissions"
	SectionAnalytics   = "analytics"
	SectionReports     = "reports"
	SectionAuditLogs   = "audit-logs"
	SectionSettings    = "settings"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is one sidebar entry.
type MenuItem struct {
	Title   string
	URL     string
	Section string
	Active  bool
}

// menu lists the top-level views in sidebar order.
var menu = []MenuItem{ //nolint:gochecknoglobals
	{Title: "Dashboard", URL: "/dashboard", Section: SectionDashboard},
	{Title: "Users", URL: "/users", Section: SectionUsers},
	{Title: "Roles", URL: "/roles", Section: SectionRoles},
	{Title: "Permissions", URL: "/permissions", Section: SectionPermissions},
	{Title: "Analytics", URL: "/analytics", Section: SectionAnalytics},
	{Title: "Reports", URL: "/reports", Section: SectionReports},
	{Title: "Audit Logs", URL: "/audit-logs", Section: SectionAuditLogs},
	{Title: "Settings", URL: "/settings", Section: SectionSettings},
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Menu returns the sidebar entries with the active section marked.
func (c *Context) Menu() []MenuItem {
	items := make([]MenuItem, len(menu))
	for i, item := range menu {
		item.Active = item.Section == c.ActiveSection
		items[i] = item
	}

	return items
}
