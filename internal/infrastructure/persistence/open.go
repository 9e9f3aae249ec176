package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-admin/internal/domain/repository"
	"github.com/jhoicas/portal-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-admin/pkg/config"
)

// Repository puerto de la instantánea más el borrado completo (lo usa cmd/seed).
type Repository interface {
	repository.StateRepository
	Reset(ctx context.Context) error
}

// Open construye el repositorio según STORE_DRIVER. El close devuelto libera la conexión.
func Open(ctx context.Context, cfg *config.Config) (Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		rdb, err := NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStateRepository(rdb), func() { _ = rdb.Close() }, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewStateRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	case config.StoreDriverFile, "":
		return NewFileStateRepository(cfg.Store.FilePath), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
}
