// Package page provides the analytics, reports and settings pages. Analytics and
// reports are placeholders; settings shows the running configuration.
package page

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler/dashboard"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/navigation"
)

const (
	// AnalyticsPath is the path to the analytics page.
	AnalyticsPath = handler.RootPath + "analytics"
	// ReportsPath is the path to the reports page.
	ReportsPath = handler.RootPath + "reports"
	// SettingsPath is the path to the settings page.
	SettingsPath = handler.RootPath + "settings"

	// PlaceholderTemplateName renders a page without content of its own.
	PlaceholderTemplateName = "pages/placeholder"
	// SettingsTemplateName is the name of the settings template.
	SettingsTemplateName = "pages/settings"
)

// SettingsData is the settings view.
type SettingsData struct {
	Title        string
	Actor        string
	StoreBackend string
	DBEngine     string
	Seed         bool
	DevMode      bool
	URL          string
	Port         int
	Keys         []string
}

// Service is the static pages handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the static pages handler.
var Handler = Service{}

// Init initializes the static pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *rbac.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACRFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.rbac = svc

	app.Get(AnalyticsPath, s.placeholder("Analytics", navigation.SectionAnalytics, AnalyticsPath))
	app.Get(ReportsPath, s.placeholder("Reports", navigation.SectionReports, ReportsPath))
	app.Get(SettingsPath, s.Settings)
}

func breadcrumbs(title, section, path string) *navigation.Context {
	return navigation.NewContext(title, section, section).
		AddBreadcrumb("Home", dashboard.Path, false).
		AddBreadcrumb(title, path, true)
}

func (s *Service) placeholder(title, section, path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render(PlaceholderTemplateName, fiber.Map{
			"Navigation": breadcrumbs(title, section, path),
			"Heading":    title,
		}, handler.BaseLayout)
	}
}

// Settings renders the running configuration.
func (s *Service) Settings(c *fiber.Ctx) error {
	engine := ""
	if s.cfg.Store.Backend == config.StoreBackendGorm {
		engine = s.cfg.DB.GormEngine
	}

	return c.Render(SettingsTemplateName, fiber.Map{
		"Navigation": breadcrumbs("Settings", navigation.SectionSettings, SettingsPath),
		"Data": SettingsData{
			Title:        s.cfg.Title,
			Actor:        s.rbac.Audit.Actor(),
			StoreBackend: s.cfg.Store.Backend,
			DBEngine:     engine,
			Seed:         s.cfg.Seed,
			DevMode:      s.cfg.DevMode,
			URL:          s.cfg.Webserver.URL,
			Port:         s.cfg.Webserver.Port,
			Keys:         store.Keys,
		},
	}, handler.BaseLayout)
}
