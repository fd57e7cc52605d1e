// Package role provides the roles list, form and bulk delete handlers.
package role

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler/dashboard"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/navigation"
)

const (
	// Path is the path to the roles page.
	Path = handler.RootPath + "roles"

	// TemplateName is the name of the roles list template.
	TemplateName = "roles/list"

	// FormTemplateName is the name of the role create/edit template.
	FormTemplateName = "roles/form"

	// PageTitle is the title of the roles page.
	PageTitle = "Roles"
)

// Form is the create/edit role form. Permissions come from the permission picker.
type Form struct {
	Name        string   `form:"name"        validate:"required"`
	Description string   `form:"description" validate:"required"`
	Permissions []string `form:"permissions"`
}

// ListData is the roles list view.
type ListData struct {
	Roles         []models.Role
	Total         int
	Filter        rbac.RoleFilter
	Selected      map[uint64]bool
	SelectedCount int
	AllSelected   bool
}

// Service is the roles handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the roles handler.
var Handler = Service{}

// Init initializes the roles handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *rbac.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACRFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.rbac = svc

	app.Get(Path, s.List)
	app.Get(Path+"/new", s.New)
	app.Post(Path, s.Create)
	app.Post(Path+"/bulk", s.Bulk)
	app.Get(Path+"/:id/edit", s.Edit)
	app.Post(Path+"/:id", s.Update)
	app.Post(Path+"/:id/delete", s.Delete)
}

func navigationFor(page, title string) *navigation.Context {
	nav := navigation.NewContext(title, navigation.SectionRoles, page).
		AddBreadcrumb("Home", dashboard.Path, false)

	if page == "list" {
		return nav.AddBreadcrumb(PageTitle, Path, true)
	}

	return nav.
		AddBreadcrumb(PageTitle, Path, false).
		AddBreadcrumb(title, "", true)
}

func listURL(f rbac.RoleFilter, success string) string {
	return handler.WithQuery(Path, map[string]string{"q": f.Query, "success": success})
}

// List handles the roles list page rendering.
func (s *Service) List(c *fiber.Ctx) error {
	filter := rbac.RoleFilter{Query: c.Query("q")}

	all := s.rbac.Roles.List()
	roles := rbac.FilterRoles(all, filter)
	visible := rbac.IDs(roles, models.RoleID)

	selection := rbac.NewSelection(handler.FormIDs(c)...)
	if c.QueryBool("toggleAll") {
		selection.ToggleAll(visible)
	}

	selection.Restrict(visible)

	selected := make(map[uint64]bool, selection.Len())
	for _, id := range selection.IDs() {
		selected[id] = true
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": navigationFor("list", PageTitle),
		"Success":    c.Query("success"),
		"Data": ListData{
			Roles:         roles,
			Total:         len(all),
			Filter:        filter,
			Selected:      selected,
			SelectedCount: selection.Len(),
			AllSelected:   selection.AllSelected(visible),
		},
	}, handler.BaseLayout)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, id uint64, form *Form, errMsg interface{}) error {
	title, action := "Add Role", Path
	if id != 0 {
		title, action = "Edit Role", Path+"/"+strconv.FormatUint(id, 10)
	}

	picked := make(map[string]bool, len(form.Permissions))
	for _, p := range form.Permissions {
		picked[p] = true
	}

	bindings := fiber.Map{
		"Navigation":  navigationFor("form", title),
		"Form":        form,
		"ID":          id,
		"Action":      action,
		"Permissions": s.rbac.Permissions.Names(),
		"Picked":      picked,
	}

	if errMsg != nil {
		bindings["Error"] = errMsg
	}

	return c.Status(status).Render(FormTemplateName, bindings, handler.BaseLayout)
}

// New renders an empty role form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, 0, &Form{}, nil)
}

func (s *Service) parseForm(c *fiber.Ctx, id uint64) (*Form, bool, error) {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse role form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, "Invalid form data")
	}

	if msgs := handler.Validate(form); msgs != nil {
		log.Debug().Strs("errors", msgs).Msg("validation failed for role form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, msgs)
	}

	if form.Permissions == nil {
		form.Permissions = make([]string, 0)
	}

	return form, true, nil
}

// Create handles the new role form submission.
func (s *Service) Create(c *fiber.Ctx) error {
	form, ok, err := s.parseForm(c, 0)
	if !ok {
		return err
	}

	r, err := s.rbac.Roles.Create(models.Role{
		Name:        form.Name,
		Description: form.Description,
		Permissions: form.Permissions,
	})
	if err != nil {
		return handler.SendError(c, err, "failed to create role")
	}

	log.Info().Uint64("id", r.ID).Str("name", r.Name).Msg("role created")

	return c.Redirect(listURL(rbac.RoleFilter{}, "Role created"), fiber.StatusSeeOther)
}

// Edit renders the form of an existing role.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to edit role")
	}

	r, err := s.rbac.Roles.Get(id)
	if err != nil {
		return handler.SendError(c, err, "failed to edit role")
	}

	return s.renderForm(c, fiber.StatusOK, id, &Form{
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
	}, nil)
}

// Update handles the edit role form submission.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to update role")
	}

	form, ok, err := s.parseForm(c, id)
	if !ok {
		return err
	}

	if _, err := s.rbac.Roles.Update(id, rbac.RoleUpdate{
		Name:        &form.Name,
		Description: &form.Description,
		Permissions: &form.Permissions,
	}); err != nil {
		return handler.SendError(c, err, "failed to update role")
	}

	return c.Redirect(listURL(rbac.RoleFilter{}, "Role updated"), fiber.StatusSeeOther)
}

// Delete removes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to delete role")
	}

	if err := s.rbac.Roles.Delete(id); err != nil {
		return handler.SendError(c, err, "failed to delete role")
	}

	return c.Redirect(listURL(rbac.RoleFilter{Query: c.FormValue("q")}, "Role deleted"), fiber.StatusSeeOther)
}

// Bulk deletes the selected roles that are visible under the echoed filter.
// Roles have no status, so delete is the only bulk action.
func (s *Service) Bulk(c *fiber.Ctx) error {
	filter := rbac.RoleFilter{Query: c.FormValue("q")}

	if action := c.FormValue("action"); action != handler.BulkDelete {
		return c.Status(fiber.StatusBadRequest).SendString("unknown bulk action: " + action)
	}

	visible := rbac.IDs(rbac.FilterRoles(s.rbac.Roles.List(), filter), models.RoleID)

	selection := rbac.NewSelection(handler.FormIDs(c)...)
	selection.Restrict(visible)

	if err := s.rbac.Roles.BulkDelete(selection.IDs()); err != nil {
		return handler.SendError(c, err, "failed to apply bulk action")
	}

	log.Info().Int("count", selection.Len()).Msg("bulk role delete applied")

	return c.Redirect(listURL(filter, ""), fiber.StatusSeeOther)
}
