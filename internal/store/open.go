package store

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/db"
)

// Open returns the backend selected by cfg.Store.Backend.
func Open(cfg *config.Config) (fiber.Storage, error) {
	switch cfg.Store.Backend {
	case "", config.StoreBackendGorm:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, err
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Str("name", cfg.DB.Name).Msg("using gorm store")

		return NewGorm(gdb), nil
	case config.StoreBackendRedis:
		s, err := NewRedis(cfg.Store.Redis)
		if err != nil {
			return nil, err
		}

		log.Info().Str("addr", cfg.Store.Redis.Addr).Int("db", cfg.Store.Redis.DB).Msg("using redis store")

		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownStoreBackend, cfg.Store.Backend)
	}
}
