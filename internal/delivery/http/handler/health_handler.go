package handler

import (
	"context"

	"talent-pipeline/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.GetHealth)
}

// GetHealth reports dependency health. The cache is optional, so a redis
// failure degrades the report without failing the check.
func (h *HealthHandler) GetHealth(c fiber.Ctx) error {
	out := fiber.Map{"database": "up", "cache": "up"}

	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			out["database"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", out)
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			out["cache"] = "down"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
