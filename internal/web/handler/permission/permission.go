// Package permission provides the permissions list, form, delete confirmation and
// bulk handlers.
package permission

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db/models"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/search"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/handler/dashboard"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web/navigation"
)

const (
	// Path is the path to the permissions page.
	Path = handler.RootPath + "permissions"

	// TemplateName is the name of the permissions list template.
	TemplateName = "permissions/list"

	// FormTemplateName is the name of the permission create/edit template.
	FormTemplateName = "permissions/form"

	// ConfirmTemplateName is the name of the delete confirmation template.
	ConfirmTemplateName = "permissions/confirm"

	// PageTitle is the title of the permissions page.
	PageTitle = "Permissions"
)

// Form is the create/edit permission form. UsedBy comes from the role picker.
type Form struct {
	Name        string   `form:"name"        validate:"required"`
	Description string   `form:"description" validate:"required"`
	Category    string   `form:"category"    validate:"required,oneof='Content Management' 'User Management' Analytics System"` //nolint:lll
	Status      string   `form:"status"      validate:"required,oneof=Active Inactive"`
	UsedBy      []string `form:"usedBy"`
}

// ListData is the permissions list view grouped by category.
type ListData struct {
	Groups        []rbac.CategoryGroup
	Count         int
	Total         int
	Filter        rbac.PermissionFilter
	Categories    []models.Category
	Statuses      []models.Status
	Selected      map[uint64]bool
	SelectedCount int
	AllSelected   bool
}

// ConfirmData is the delete confirmation view.
type ConfirmData struct {
	Action string
	IDs    []uint64
	Usages []rbac.Usage
	Roles  []string
	Filter rbac.PermissionFilter
}

// Service is the permissions handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the permissions handler.
var Handler = Service{}

// Init initializes the permissions handler.
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
	app.Post(Path+"/:id/toggle", s.Toggle)
}

func navigationFor(page, title string) *navigation.Context {
	nav := navigation.NewContext(title, navigation.SectionPermissions, page).
		AddBreadcrumb("Home", dashboard.Path, false)

	if page == "list" {
		return nav.AddBreadcrumb(PageTitle, Path, true)
	}

	return nav.
		AddBreadcrumb(PageTitle, Path, false).
		AddBreadcrumb(title, "", true)
}

func filterFrom(value func(key string, defaultValue ...string) string) rbac.PermissionFilter {
	return rbac.PermissionFilter{
		Query:    value("q"),
		Category: value("category", search.All),
		Status:   value("status", search.All),
	}
}

func listURL(f rbac.PermissionFilter, success string) string {
	values := map[string]string{"q": f.Query, "success": success}

	if f.Category != search.All {
		values["category"] = f.Category
	}

	if f.Status != search.All {
		values["status"] = f.Status
	}

	return handler.WithQuery(Path, values)
}

// List handles the permissions page rendering.
func (s *Service) List(c *fiber.Ctx) error {
	filter := filterFrom(c.Query)

	all := s.rbac.Permissions.List()
	perms := rbac.FilterPermissions(all, filter)
	visible := rbac.IDs(perms, models.PermissionID)

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
			Groups:        rbac.GroupByCategory(perms),
			Count:         len(perms),
			Total:         len(all),
			Filter:        filter,
			Categories:    models.Categories,
			Statuses:      []models.Status{models.StatusActive, models.StatusInactive},
			Selected:      selected,
			SelectedCount: selection.Len(),
			AllSelected:   selection.AllSelected(visible),
		},
	}, handler.BaseLayout)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, id uint64, form *Form, errMsg interface{}) error {
	title, action := "Add Permission", Path
	if id != 0 {
		title, action = "Edit Permission", Path+"/"+strconv.FormatUint(id, 10)
	}

	picked := make(map[string]bool, len(form.UsedBy))
	for _, r := range form.UsedBy {
		picked[r] = true
	}

	bindings := fiber.Map{
		"Navigation": navigationFor("form", title),
		"Form":       form,
		"ID":         id,
		"Action":     action,
		"Categories": models.Categories,
		"Statuses":   []models.Status{models.StatusActive, models.StatusInactive},
		"Roles":      s.rbac.Roles.Names(),
		"Picked":     picked,
	}

	if errMsg != nil {
		bindings["Error"] = errMsg
	}

	return c.Status(status).Render(FormTemplateName, bindings, handler.BaseLayout)
}

// New renders an empty permission form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, 0, &Form{
		Category: string(models.CategoryContentManagement),
		Status:   string(models.StatusActive),
	}, nil)
}

func (s *Service) parseForm(c *fiber.Ctx, id uint64) (*Form, bool, error) {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse permission form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, "Invalid form data")
	}

	if msgs := handler.Validate(form); msgs != nil {
		log.Debug().Strs("errors", msgs).Msg("validation failed for permission form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, msgs)
	}

	if form.UsedBy == nil {
		form.UsedBy = make([]string, 0)
	}

	return form, true, nil
}

// Create handles the new permission form submission.
func (s *Service) Create(c *fiber.Ctx) error {
	form, ok, err := s.parseForm(c, 0)
	if !ok {
		return err
	}

	p, err := s.rbac.Permissions.Create(models.Permission{
		Name:        form.Name,
		Description: form.Description,
		Category:    models.Category(form.Category),
		Status:      models.Status(form.Status),
		UsedBy:      form.UsedBy,
	})
	if err != nil {
		return handler.SendError(c, err, "failed to create permission")
	}

	log.Info().Uint64("id", p.ID).Str("name", p.Name).Msg("permission created")

	return c.Redirect(listURL(rbac.PermissionFilter{}, "Permission created"), fiber.StatusSeeOther)
}

// Edit renders the form of an existing permission.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to edit permission")
	}

	p, err := s.rbac.Permissions.Get(id)
	if err != nil {
		return handler.SendError(c, err, "failed to edit permission")
	}

	return s.renderForm(c, fiber.StatusOK, id, &Form{
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Status:      string(p.Status),
		UsedBy:      p.UsedBy,
	}, nil)
}

// Update handles the edit permission form submission.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to update permission")
	}

	form, ok, err := s.parseForm(c, id)
	if !ok {
		return err
	}

	var (
		category = models.Category(form.Category)
		status   = models.Status(form.Status)
	)

	if _, err := s.rbac.Permissions.Update(id, rbac.PermissionUpdate{
		Name:        &form.Name,
		Description: &form.Description,
		Category:    &category,
		Status:      &status,
		UsedBy:      &form.UsedBy,
	}); err != nil {
		return handler.SendError(c, err, "failed to update permission")
	}

	return c.Redirect(listURL(rbac.PermissionFilter{}, "Permission updated"), fiber.StatusSeeOther)
}

// confirm renders the confirmation page listing the roles still using the permissions.
func (s *Service) confirm(c *fiber.Ctx, action string, ids []uint64, inUse *rbac.InUseError, filter rbac.PermissionFilter) error {
	log.Debug().Err(inUse).Msg("permission delete needs confirmation")

	return c.Status(fiber.StatusConflict).Render(ConfirmTemplateName, fiber.Map{
		"Navigation": navigationFor("confirm", "Confirm Delete"),
		"Data": ConfirmData{
			Action: action,
			IDs:    ids,
			Usages: inUse.Usages,
			Roles:  inUse.Roles(),
			Filter: filter,
		},
	}, handler.BaseLayout)
}

// Delete removes a permission. A permission used by roles is only removed once
// the form carries confirm=true; roles keep listing it either way.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to delete permission")
	}

	filter := filterFrom(c.FormValue)

	err = s.rbac.Permissions.Delete(id, c.FormValue("confirm") == "true")

	var inUse *rbac.InUseError
	if errors.As(err, &inUse) {
		return s.confirm(c, Path+"/"+strconv.FormatUint(id, 10)+"/delete", []uint64{id}, inUse, filter)
	}

	if err != nil {
		return handler.SendError(c, err, "failed to delete permission")
	}

	return c.Redirect(listURL(filter, "Permission deleted"), fiber.StatusSeeOther)
}

// Toggle flips a permission's status.
func (s *Service) Toggle(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to toggle permission status")
	}

	if _, err := s.rbac.Permissions.ToggleStatus(id); err != nil {
		return handler.SendError(c, err, "failed to toggle permission status")
	}

	return c.Redirect(listURL(filterFrom(c.FormValue), ""), fiber.StatusSeeOther)
}

// Bulk applies the posted action to the selected permissions that are visible under
// the echoed filter.
func (s *Service) Bulk(c *fiber.Ctx) error {
	filter := filterFrom(c.FormValue)

	visible := rbac.IDs(rbac.FilterPermissions(s.rbac.Permissions.List(), filter), models.PermissionID)

	selection := rbac.NewSelection(handler.FormIDs(c)...)
	selection.Restrict(visible)
	ids := selection.IDs()

	var err error

	switch action := c.FormValue("action"); action {
	case handler.BulkActivate:
		err = s.rbac.Permissions.BulkActivate(ids)
	case handler.BulkDeactivate:
		err = s.rbac.Permissions.BulkDeactivate(ids)
	case handler.BulkDelete:
		err = s.rbac.Permissions.BulkDelete(ids, c.FormValue("confirm") == "true")

		var inUse *rbac.InUseError
		if errors.As(err, &inUse) {
			return s.confirm(c, Path+"/bulk", ids, inUse, filter)
		}
	default:
		return c.Status(fiber.StatusBadRequest).SendString("unknown bulk action: " + action)
	}

	if err != nil {
		return handler.SendError(c, err, "failed to apply bulk action")
	}

	log.Info().Str("action", c.FormValue("action")).Int("count", len(ids)).Msg("bulk permission action applied")

	return c.Redirect(listURL(filter, ""), fiber.StatusSeeOther)
}
