// Package initializer opens the infrastructure the app runs on and hands
// it over as app.Deps.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/cache"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Resources are the connections behind a Deps. Close releases them.
type Resources struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// Close closes Redis, then the database.
func (r *Resources) Close() error {
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	errs = append(errs, infra.Close(r.DB))
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies:
// the logger, the database (migrated when cfg.DB.AutoMigrate is set) and,
// when cfg.Redis.URL is set, the shared rate limiter storage and the
// suggestion job store. Without Redis both stay in process memory.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	res *Resources,
	err error,
) {
	logger := SetupLogger(cfg.Log, os.Stdout)
	deps = &app.Deps{Logger: logger}
	res = &Resources{}

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	res.DB = db
	if cfg.DB.AutoMigrate {
		if err := infra.Migrate(db); err != nil {
			_ = res.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Database migrated", "dialect", infra.DialectOf(cfg.DB.Url))
	}

	// Initialize unit of work
	deps.Uow = infrarepo.NewUoW(db)

	if cfg.Redis != nil && cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			_ = res.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		res.Redis = client
		deps.RateLimitStorage = cache.NewRedisStorage(client, cfg.Redis.KeyPrefix+"limiter:", logger)
		deps.JobStore = cache.NewRedisJobStore(client, cfg.Redis.KeyPrefix, logger)
		logger.Info("Redis connected", "prefix", cfg.Redis.KeyPrefix)
	} else {
		logger.Info("Redis not configured; rate limits and suggestion jobs stay in memory")
	}
	return deps, res, nil
}
