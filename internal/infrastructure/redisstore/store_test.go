package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/redisstore"
)

func newStore(t *testing.T) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := redisstore.Connect(context.Background(), redisstore.Config{Addr: mr.Addr(), Prefix: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestIncidents(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	empty, err := s.LoadIncidents(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ts := time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveIncidents(ctx, []*entity.Incident{{
		ID: "INC-2026-001", Title: "Farola", Priority: entity.PriorityBaja, Status: entity.StatusPendiente,
		Category: entity.CategoryParcelas, CreatedAt: ts, UpdatedAt: ts,
	}}))
	assert.True(t, mr.Exists("test:incidents"))

	got, err := s.LoadIncidents(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Farola", got[0].Title)
	assert.True(t, got[0].CreatedAt.Equal(ts))
}

func TestUsuariosYSesion(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUserRegistry(ctx, []*entity.User{
		{Name: "Ana", Email: "ana@playabrava.com", PasswordHash: "h", Department: entity.DepartmentRecepcion, Role: entity.RoleUser},
	}))
	users, err := s.LoadUserRegistry(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "h", users[0].PasswordHash)

	sess, err := s.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, s.SaveUser(ctx, users[0]))
	assert.True(t, mr.Exists("test:currentUser"))
	sess, err = s.LoadUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ana@playabrava.com", sess.Email)

	require.NoError(t, s.SaveUser(ctx, nil))
	assert.False(t, mr.Exists("test:currentUser"))
}

func TestJSONCorrupto(t *testing.T) {
	s, mr := newStore(t)
	require.NoError(t, mr.Set("test:incidents", "{no-json"))
	_, err := s.LoadIncidents(context.Background())
	assert.Error(t, err)
}

func TestConnect_SinServidor(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	_, err = redisstore.Connect(context.Background(), redisstore.Config{Addr: addr})
	assert.Error(t, err)
}
