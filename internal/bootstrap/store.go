package bootstrap

import (
	"context"
	"fmt"

	"github.com/ennichirag3/blue-carbon-frontend/config"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/repository"
)

// OpenRepository connects the storage backend selected by STORE_BACKEND.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch cfg.Server.Backend {
	case config.BackendMemory, "":
		return repository.NewMemoryRepository(), nil

	case config.BackendPostgres:
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil

	case config.BackendRedis:
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return repository.NewRedisRepository(client), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Server.Backend)
	}
}
