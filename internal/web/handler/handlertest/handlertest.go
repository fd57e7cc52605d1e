// Package handlertest provides a fiber app and rbac service wired for handler tests.
package handlertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store/storetest"
)

// Views is a minimal Fiber views engine. It writes the template name followed by
// the "Error" binding so tests can assert on both, and keeps the last binding.
type Views struct {
	mu       sync.Mutex
	name     string
	bindings fiber.Map
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.name = name
	v.bindings, _ = data.(fiber.Map)

	_, _ = io.WriteString(w, name)

	if v.bindings != nil {
		switch e := v.bindings["Error"].(type) {
		case string:
			_, _ = io.WriteString(w, "\n"+e)
		case []string:
			_, _ = io.WriteString(w, "\n"+strings.Join(e, "\n"))
		}
	}

	return nil
}

// Last returns the name and bindings of the last rendered template.
func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.bindings
}

// Env is a test app together with its collaborators.
type Env struct {
	App     *fiber.App
	Views   *Views
	Storage *storetest.Storage
	RBAC    *rbac.Service
	Config  *config.Config
}

// New returns an app with seeded default collections.
func New(t *testing.T) *Env {
	t.Helper()

	views := &Views{}
	storage := storetest.New()

	_, err := rbac.Seed(storage)
	require.NoError(t, err)

	w := audit.New(storage, config.DefaultActor).WithClock(func() time.Time {
		return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	})

	return &Env{
		App:     fiber.New(fiber.Config{Views: views}),
		Views:   views,
		Storage: storage,
		RBAC:    rbac.New(storage, w),
		Config: &config.Config{
			Title: "GoRBAC-Admin",
			Actor: config.DefaultActor,
			Store: config.Store{Backend: config.StoreBackendGorm},
			DB:    config.DB{GormEngine: "sqlite", Name: ":memory:"},
			Seed:  true,
			Webserver: config.Webserver{
				URL:  "http://localhost",
				Port: 8080,
			},
		},
	}
}

// Get performs a GET request and returns the response and its body.
func (e *Env) Get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()

	return e.do(t, httptest.NewRequest(fiber.MethodGet, target, http.NoBody))
}

// PostForm posts form values and returns the response and its body.
func (e *Env) PostForm(t *testing.T, target string, form url.Values) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return e.do(t, req)
}

func (e *Env) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}
