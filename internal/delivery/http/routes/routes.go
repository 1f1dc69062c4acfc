package routes

import (
	"log"

	"talent-pipeline/internal/config"
	"talent-pipeline/internal/database"
	"talent-pipeline/internal/delivery/http/handler"
	"talent-pipeline/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

// Deps is everything the route tree needs from the container.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

// Register wires the health check and every versioned API group onto the
// fiber app.
func Register(f *fiber.App, deps Deps) {
	if f == nil {
		return
	}

	health := handler.NewHealthHandler(deps.DB, deps.Cache)
	health.RegisterRoutes(f)

	api := f.Group("/api")
	RegisterV1(api.Group("/v1"), deps)
}
