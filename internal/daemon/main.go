// Package daemon wires storage, the rbac collections and the web service together.
package daemon

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/audit"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	storage    fiber.Storage
	rbac       *rbac.Service
	webService *web.Service
}

// New opens the configured store, seeds it when enabled and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	storage, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := seed(cfg, storage); err != nil {
		_ = storage.Close()
		return nil, err
	}

	svc := rbac.New(storage, audit.New(storage, cfg.Actor))

	return &Daemon{
		cfg:        cfg,
		storage:    storage,
		rbac:       svc,
		webService: web.New(cfg, svc),
	}, nil
}

// Start runs the web service until a shutdown signal arrives and closes the store.
func (d *Daemon) Start() error {
	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)

	go func() {
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return d.Close()
}

// Close releases the store.
func (d *Daemon) Close() error {
	return d.storage.Close()
}
