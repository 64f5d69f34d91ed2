// Package storage elige el adaptador de persistencia según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/internal/infrastructure/memory"
	"github.com/playabrava/gestor-camping/internal/infrastructure/postgres"
	"github.com/playabrava/gestor-camping/internal/infrastructure/redisstore"
	"github.com/playabrava/gestor-camping/pkg/config"
)

// Open conecta el adaptador configurado. Con postgres aplica antes las migraciones.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.PersistenceAdapter, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(), nil

	case config.DriverRedis:
		st, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.Prefix).Msg("almacenamiento redis")
		return st, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("almacenamiento postgres")
		return postgres.NewStore(pool), nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
