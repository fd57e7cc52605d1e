// Package dashboard provides the dashboard handler showing collection statistics.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *rbac.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACRFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.rbac = svc

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard, "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	stats := s.rbac.Stats()

	log.Debug().
		Int("total_users", stats.TotalUsers).
		Int("roles", stats.Roles).
		Int("active_permissions", stats.ActivePermissions).
		Int("admin_users", stats.AdminUsers).
		Msg("dashboard statistics computed")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Title":      s.cfg.Title,
		"Stats":      stats,
	}, handler.BaseLayout)
}
