// Package user provides the users list, form and bulk handlers.
package user

import (
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
	// Path is the path to the users page.
	Path = handler.RootPath + "users"

	// TemplateName is the name of the users list template.
	TemplateName = "users/list"

	// FormTemplateName is the name of the user create/edit template.
	FormTemplateName = "users/form"

	// PageTitle is the title of the users page.
	PageTitle = "Users"
)

// Form is the create/edit user form.
type Form struct {
	Name   string `form:"name"   validate:"required"`
	Email  string `form:"email"  validate:"required,email"`
	Role   string `form:"role"   validate:"required"`
	Status string `form:"status" validate:"required,oneof=Active Inactive"`
}

// ListData is the users list view.
type ListData struct {
	Users         []models.User
	Total         int
	Filter        rbac.UserFilter
	Roles         []string
	Statuses      []models.Status
	Selected      map[uint64]bool
	SelectedCount int
	AllSelected   bool
}

// Service is the users handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	rbac *rbac.Service
}

// Handler is the users handler.
var Handler = Service{}

// Init initializes the users handler.
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
	nav := navigation.NewContext(title, navigation.SectionUsers, page).
		AddBreadcrumb("Home", dashboard.Path, false)

	if page == "list" {
		return nav.AddBreadcrumb(PageTitle, Path, true)
	}

	return nav.
		AddBreadcrumb(PageTitle, Path, false).
		AddBreadcrumb(title, "", true)
}

// filterFrom reads the filter from the query string, or from the posted form
// when bulk actions echo it back.
func filterFrom(value func(key string, defaultValue ...string) string) rbac.UserFilter {
	return rbac.UserFilter{
		Query:  value("q"),
		Role:   value("role", search.All),
		Status: value("status", search.All),
	}
}

func listURL(f rbac.UserFilter, extra map[string]string) string {
	values := map[string]string{"q": f.Query}

	if f.Role != search.All {
		values["role"] = f.Role
	}

	if f.Status != search.All {
		values["status"] = f.Status
	}

	for k, v := range extra {
		values[k] = v
	}

	return handler.WithQuery(Path, values)
}

// List handles the users list page rendering.
func (s *Service) List(c *fiber.Ctx) error {
	filter := filterFrom(c.Query)

	all := s.rbac.Users.List()
	users := rbac.FilterUsers(all, filter)
	visible := rbac.IDs(users, models.UserID)

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
			Users:         users,
			Total:         len(all),
			Filter:        filter,
			Roles:         s.rbac.Roles.Names(),
			Statuses:      []models.Status{models.StatusActive, models.StatusInactive},
			Selected:      selected,
			SelectedCount: selection.Len(),
			AllSelected:   selection.AllSelected(visible),
		},
	}, handler.BaseLayout)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, id uint64, form *Form, errMsg interface{}) error {
	title, action := "Add User", Path
	if id != 0 {
		title, action = "Edit User", Path+"/"+strconv.FormatUint(id, 10)
	}

	bindings := fiber.Map{
		"Navigation": navigationFor("form", title),
		"Form":       form,
		"ID":         id,
		"Action":     action,
		"Roles":      s.rbac.Roles.Names(),
		"Statuses":   []models.Status{models.StatusActive, models.StatusInactive},
	}

	if errMsg != nil {
		bindings["Error"] = errMsg
	}

	return c.Status(status).Render(FormTemplateName, bindings, handler.BaseLayout)
}

// New renders an empty user form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, 0, &Form{Role: "Viewer", Status: string(models.StatusActive)}, nil)
}

// parseForm parses and validates the posted form. It renders the form with the
// errors and returns false when the input is unusable.
func (s *Service) parseForm(c *fiber.Ctx, id uint64) (*Form, bool, error) {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse user form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, "Invalid form data")
	}

	if msgs := handler.Validate(form); msgs != nil {
		log.Debug().Strs("errors", msgs).Msg("validation failed for user form")

		return nil, false, s.renderForm(c, fiber.StatusBadRequest, id, form, msgs)
	}

	return form, true, nil
}

// Create handles the new user form submission.
func (s *Service) Create(c *fiber.Ctx) error {
	form, ok, err := s.parseForm(c, 0)
	if !ok {
		return err
	}

	u, err := s.rbac.Users.Create(models.User{
		Name:   form.Name,
		Email:  form.Email,
		Role:   form.Role,
		Status: models.Status(form.Status),
	})
	if err != nil {
		return handler.SendError(c, err, "failed to create user")
	}

	log.Info().Uint64("id", u.ID).Str("email", u.Email).Msg("user created")

	return c.Redirect(listURL(rbac.UserFilter{}, map[string]string{"success": "User created"}), fiber.StatusSeeOther)
}

// Edit renders the form of an existing user.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to edit user")
	}

	u, err := s.rbac.Users.Get(id)
	if err != nil {
		return handler.SendError(c, err, "failed to edit user")
	}

	return s.renderForm(c, fiber.StatusOK, id, &Form{
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: string(u.Status),
	}, nil)
}

// Update handles the edit user form submission.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to update user")
	}

	form, ok, err := s.parseForm(c, id)
	if !ok {
		return err
	}

	status := models.Status(form.Status)

	if _, err := s.rbac.Users.Update(id, rbac.UserUpdate{
		Name:   &form.Name,
		Email:  &form.Email,
		Role:   &form.Role,
		Status: &status,
	}); err != nil {
		return handler.SendError(c, err, "failed to update user")
	}

	return c.Redirect(listURL(rbac.UserFilter{}, map[string]string{"success": "User updated"}), fiber.StatusSeeOther)
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to delete user")
	}

	if err := s.rbac.Users.Delete(id); err != nil {
		return handler.SendError(c, err, "failed to delete user")
	}

	return c.Redirect(listURL(filterFrom(c.FormValue), map[string]string{"success": "User deleted"}), fiber.StatusSeeOther)
}

// Toggle flips a user's status.
func (s *Service) Toggle(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.SendError(c, err, "failed to toggle user status")
	}

	if _, err := s.rbac.Users.ToggleStatus(id); err != nil {
		return handler.SendError(c, err, "failed to toggle user status")
	}

	return c.Redirect(listURL(filterFrom(c.FormValue), nil), fiber.StatusSeeOther)
}

// Bulk applies the posted action to the selected users that are visible under the
// echoed filter.
func (s *Service) Bulk(c *fiber.Ctx) error {
	filter := filterFrom(c.FormValue)

	visible := rbac.IDs(rbac.FilterUsers(s.rbac.Users.List(), filter), models.UserID)

	selection := rbac.NewSelection(handler.FormIDs(c)...)
	selection.Restrict(visible)
	ids := selection.IDs()

	var err error

	switch action := c.FormValue("action"); action {
	case handler.BulkActivate:
		err = s.rbac.Users.BulkActivate(ids)
	case handler.BulkDeactivate:
		err = s.rbac.Users.BulkDeactivate(ids)
	case handler.BulkDelete:
		err = s.rbac.Users.BulkDelete(ids)
	default:
		return c.Status(fiber.StatusBadRequest).SendString("unknown bulk action: " + action)
	}

	if err != nil {
		return handler.SendError(c, err, "failed to apply bulk action")
	}

	log.Info().Str("action", c.FormValue("action")).Int("count", len(ids)).Msg("bulk user action applied")

	return c.Redirect(listURL(filter, nil), fiber.StatusSeeOther)
}
