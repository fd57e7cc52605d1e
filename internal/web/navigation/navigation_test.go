package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Test Page", "section1", "page1")

	assert.Equal(t, "Test Page", ctx.PageTitle)
	assert.Equal(t, "section1", ctx.ActiveSection)
	assert.Equal(t, "page1", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb(t *testing.T) {
	ctx := NewContext("Test Page", "section1", "page1")

	// Add first breadcrumb
	ctx.AddBreadcrumb("Home", "/", false)
	assert.Len(t, ctx.Breadcrumbs, 1)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/", ctx.Breadcrumbs[0].URL)
	assert.False(t, ctx.Breadcrumbs[0].Active)

	// Add second breadcrumb
	ctx.AddBreadcrumb("Settings", "/settings", false)
	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Settings", ctx.Breadcrumbs[1].Title)

	// Add active breadcrumb
	ctx.AddBreadcrumb("Current Page", "/settings/page", true)
	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Test Page", "section1", "page1").
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Settings", "/settings", false).
		AddBreadcrumb("Current", "/settings/current", true)

	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "Settings", ctx.Breadcrumbs[1].Title)
	assert.Equal(t, "Current", ctx.Breadcrumbs[2].Title)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Test Page", "settings", "general")

	// Should return true when both section and page match
	assert.True(t, ctx.IsActive("settings", "general"))

	// Should return false when section doesn't match
	assert.False(t, ctx.IsActive("dashboard", "general"))

	// Should return false when page doesn't match
	assert.False(t, ctx.IsActive("settings", "store"))

	// Should return false when neither match
	assert.False(t, ctx.IsActive("users", "list"))
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := NewContext("Test Page", "settings", "general")

	// Should return true when section matches
	assert.True(t, ctx.IsSectionActive("settings"))

	// Should return false when section doesn't match
	assert.False(t, ctx.IsSectionActive("dashboard"))
	assert.False(t, ctx.IsSectionActive("admin"))
}

func TestContext_Menu(t *testing.T) {
	ctx := NewContext("Audit Logs", SectionAuditLogs, "list")

	items := ctx.Menu()
	require.Len(t, items, 8)

	assert.Equal(t, "Dashboard", items[0].Title)
	assert.Equal(t, "/dashboard", items[0].URL)
	assert.Equal(t, "/settings", items[7].URL)

	active := make([]string, 0)
	for _, item := range items {
		if item.Active {
			active = append(active, item.Section)
		}
	}

	assert.Equal(t, []string{SectionAuditLogs}, active)

	// the shared menu is not modified
	assert.False(t, NewContext("Users", SectionUsers, "list").Menu()[6].Active)
}
