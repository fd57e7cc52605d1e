package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/GoRBAC-Admin/GoRBAC-Admin/internal/logger/adapter/fiber"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/logger"
)

// expectedLoggerJSONFormat implements loggers default json format.
type expectedLoggerJSONFormat struct {
	IP     net.IP `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
}

func consoleJSON() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *expectedLoggerJSONFormat
	}{
		{
			name:       "empty no output at all",
			targetPath: "/users",
		},
		{
			name:       "get users log to console json",
			config:     consoleJSON(),
			targetPath: "/users",
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/users",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "query string is kept",
			config:     consoleJSON(),
			targetPath: "/users?search=ann&status=Active",
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/users?search=ann&status=Active",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "unknown route",
			config:     consoleJSON(),
			targetPath: "/nope",
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusNotFound,
				URI:    "/nope",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "check alive is not logged",
			config:     consoleJSON(),
			targetPath: "/checkalive",
		},
		{
			name:       "static assets are skipped",
			config:     consoleJSON(),
			targetPath: "/static/css/app.css",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.targetPath, tt.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var decoded expectedLoggerJSONFormat
			require.NoError(t, json.Unmarshal([]byte(output), &decoded))

			assert.Equal(t, tt.want.Host, decoded.Host)
			assert.Equal(t, tt.want.Method, decoded.Method)
			assert.Equal(t, tt.want.Status, decoded.Status)
			assert.Equal(t, tt.want.IP, decoded.IP)
			assert.Equal(t, tt.want.URI, decoded.URI)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	ok := func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	}

	app.Get("/users", ok)
	app.Get("/checkalive", ok)
	app.Get("/static/css/app.css", ok)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC, err
}
