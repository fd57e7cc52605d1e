package daemon

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/store"
)

func seed(cfg *config.Config, storage fiber.Storage) error {
	if !cfg.Seed {
		log.Debug().Msg("seeding disabled")
		return nil
	}

	seeded, err := rbac.Seed(storage)
	if err != nil {
		return errors.Wrap(err, "failed to seed default collections")
	}

	if len(seeded) == 0 {
		log.Debug().Msg("all collections present, nothing seeded")
	}

	return nil
}

// Seed opens the configured store and writes the default collections for absent
// keys. With reset every collection key, the audit log included, is removed first.
func Seed(cfg *config.Config, reset bool) ([]string, error) {
	storage, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	if reset {
		for _, key := range store.Keys {
			if err := storage.Delete(key); err != nil {
				return nil, errors.Wrapf(err, "failed to reset %s", key)
			}
		}

		log.Warn().Strs("keys", store.Keys).Msg("collections reset")
	}

	seeded, err := rbac.Seed(storage)
	if err != nil {
		return seeded, errors.Wrap(err, "failed to seed default collections")
	}

	return seeded, nil
}
