// Package auditlog provides the audit log handler.
package auditlog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/search"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler/dashboard"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/navigation"
)

const (
	// Path is the path to the audit log page.
	Path = handler.RootPath + "audit-logs"

	// TemplateName is the name of the audit log template.
	TemplateName = "audit-logs/list"

	// PageTitle is the title of the audit log page.
	PageTitle = "Audit Logs"
)

// ListData is the audit log view.
type ListData struct {
	Page       search.Page[models.AuditLogEntry]
	Total      int
	Filter     audit.Filter
	Severities []models.Severity
	Resources  []string
}

// Service is the audit log handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the audit log handler.
var Handler = Service{}

// Init initializes the audit log handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *rbac.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACRFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.rbac = svc

	app.Get(Path, s.List)
}

// List renders the filtered audit log, newest entry first.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext(PageTitle, navigation.SectionAuditLogs, "list").
		AddBreadcrumb("Home", dashboard.Path, false).
		AddBreadcrumb(PageTitle, Path, true)

	filter := audit.Filter{
		Query:    c.Query("q"),
		Severity: c.Query("severity", search.All),
		Resource: c.Query("resource", search.All),
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", strconv.Itoa(search.DefaultPageSize)))

	entries := s.rbac.Audit.Entries()
	filtered := audit.FilterEntries(entries, filter)

	log.Debug().
		Int("total", len(entries)).
		Int("matched", len(filtered)).
		Msg("audit log filtered")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data": ListData{
			Page:       search.Paginate(filtered, page, pageSize),
			Total:      len(entries),
			Filter:     filter,
			Severities: models.Severities,
			Resources:  []string{audit.ResourceUser, audit.ResourceRole, audit.ResourcePermission},
		},
	}, handler.BaseLayout)
}
