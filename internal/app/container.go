package app

import (
	"context"
	"log"
	"os"

	"talent-pipeline/internal/config"
	"talent-pipeline/internal/database"
	dbpostgres "talent-pipeline/internal/database/postgres"
	"talent-pipeline/internal/infrastructure/cache"
)

// Container holds the process-wide dependencies: configuration, the
// Postgres pool, the optional redis connection, and the shared logger.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	// Redis is best-effort: an unreachable server degrades caching and
	// moves the transition lock in-process, it never blocks startup.
	redisCache := cache.NewRedis(logger)

	return &Container{Config: cfg, DB: db, Cache: redisCache, Logger: logger}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
