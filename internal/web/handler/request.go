package handler

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/rbac"
)

// ErrInvalidID is returned when the :id route parameter is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// FormIDs returns every valid "ids" value of a posted form or query string.
func FormIDs(c *fiber.Ctx) []uint64 {
	values := c.Request().PostArgs().PeekMulti("ids")
	if len(values) == 0 {
		values = c.Request().URI().QueryArgs().PeekMulti("ids")
	}

	ids := make([]uint64, 0, len(values))

	for _, v := range values {
		id, err := strconv.ParseUint(string(v), 10, 64)
		if err != nil || id == 0 {
			continue
		}

		ids = append(ids, id)
	}

	return ids
}

// WithQuery appends the non-empty values to path as a query string.
func WithQuery(path string, values map[string]string) string {
	q := url.Values{}

	for k, v := range values {
		if v != "" {
			q.Set(k, v)
		}
	}

	if len(q) == 0 {
		return path
	}

	return path + "?" + q.Encode()
}

// StatusFor maps a collection error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrInvalidID):
		return fiber.StatusBadRequest
	case errors.Is(err, rbac.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, rbac.ErrPermissionInUse):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// SendError logs err and answers with the matching status code.
func SendError(c *fiber.Ctx, err error, msg string) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	} else {
		log.Debug().Err(err).Str("path", c.Path()).Msg(msg)
	}

	return c.Status(status).SendString(msg + ": " + err.Error())
}
