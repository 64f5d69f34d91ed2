package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/auth"
	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/memory"
	"github.com/playabrava/gestor-camping/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *registry.Registry, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	reg := registry.New(mem, access.MustNewPolicy(), zerolog.Nop(), registry.Options{
		SuperAdminPassword: "admin-pass", HashCost: bcrypt.MinCost,
	})
	require.NoError(t, reg.Load(context.Background()))
	_, err := reg.Register(context.Background(), dto.CreateUserRequest{
		Name: "Ana", Email: "ana@playabrava.com", Password: "secreto1", Department: "RECEPCION",
	})
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(reg, mem, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "gestor-camping"}, zerolog.Nop())
	return uc, reg, mem
}

func TestLogin_Correcto(t *testing.T) {
	uc, _, mem := setup(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@playabrava.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "USER", resp.User.Role)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@playabrava.com", claims.Email)

	sess, err := mem.LoadUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ana@playabrava.com", sess.Email)
	assert.Empty(t, sess.PasswordHash, "la sesión no guarda el hash")
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _, mem := setup(t)

	for _, in := range []dto.LoginRequest{
		{Email: "ana@playabrava.com", Password: "otra"},
		{Email: "nadie@playabrava.com", Password: "secreto1"},
		{Email: "ana@playabrava.com", Password: ""},
	} {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	sess, err := mem.LoadUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionYLogout(t *testing.T) {
	uc, reg, _ := setup(t)

	s, err := uc.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s.User)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@playabrava.com", Password: "secreto1"})
	require.NoError(t, err)

	_, err = reg.SetRole(context.Background(), entity.RoleAdmin, "ana@playabrava.com", entity.RoleAdmin)
	require.NoError(t, err)

	s, err = uc.Session(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.User)
	assert.Equal(t, "ADMIN", s.User.Role, "la sesión refleja el rol vigente")

	require.NoError(t, uc.Logout(context.Background()))
	s, err = uc.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s.User)
}
