package storage_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/infrastructure/memory"
	"github.com/playabrava/gestor-camping/internal/infrastructure/redisstore"
	"github.com/playabrava/gestor-camping/internal/infrastructure/storage"
	"github.com/playabrava/gestor-camping/pkg/config"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}
	st, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()
	assert.IsType(t, &memory.Store{}, st)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverRedis},
		Redis:   config.RedisConfig{Addr: mr.Addr(), Prefix: "test"},
	}
	st, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()
	assert.IsType(t, &redisstore.Store{}, st)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}
	_, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
