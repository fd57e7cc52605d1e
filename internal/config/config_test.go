package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, StoreBackendGorm, cfg.Store.Backend)
	assert.Equal(t, "sqlite", cfg.DB.GormEngine)
	assert.Equal(t, 3*time.Second, cfg.Store.Redis.Timeout)
	assert.Equal(t, DefaultActor, cfg.Actor)
	assert.True(t, cfg.Seed)

	// file logger keys differ from the field names
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.Equal(t, "error.log", cfg.Log.File.ErrorLog)
	assert.Equal(t, 100, cfg.Log.File.InfoMaxSize)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     error
		wantBackend string
	}{
		{
			name: "valid config defaults to gorm",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
			wantBackend: StoreBackendGorm,
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080"},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown backend",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Store:     Store{Backend: "etcd"},
			},
			wantErr: ErrUnknownStoreBackend,
		},
		{
			name: "redis without address",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Store:     Store{Backend: StoreBackendRedis},
			},
			wantErr: ErrEmptyRedisAddr,
		},
		{
			name: "redis with address",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Store:     Store{Backend: StoreBackendRedis, Redis: Redis{Addr: "127.0.0.1:6379"}},
			},
			wantBackend: StoreBackendRedis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBackend, tt.config.Store.Backend)
			assert.Equal(t, 5, tt.config.Webserver.ShutDownTime)
			assert.Equal(t, DefaultActor, tt.config.Actor)
		})
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Actor":"ops@example.com","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, "ops@example.com", cfg.Actor)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// untouched nested values survive the merge
	assert.Equal(t, "http://localhost:8080", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Store: Store{Backend: StoreBackendGorm},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, tomlStr)
	assert.True(t, strings.Contains(tomlStr, "Test"), "DumpConfig() output should contain Title")
	assert.Contains(t, tomlStr, StoreBackendGorm)
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
	assert.Contains(t, jsonStr, `"Port": 8080`)
}
