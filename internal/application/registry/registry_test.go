package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSuperAdminPassword = "playa-brava-admin"

func newRegistry(t *testing.T) (*registry.Registry, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	r := registry.New(store, access.MustNewPolicy(), zerolog.Nop(), registry.Options{
		SuperAdminPassword: testSuperAdminPassword,
		HashCost:           bcrypt.MinCost,
	})
	require.NoError(t, r.Load(context.Background()))
	return r, store
}

func ana() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Name: "Ana", Email: "ana@playabrava.com", Password: "secreto1", Department: "RECEPCION",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Load / cuenta protegida
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_CreaSuperAdminSiFalta(t *testing.T) {
	r, store := newRegistry(t)

	u, ok := r.Lookup(entity.SuperAdminEmail)
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	saved, err := store.LoadUserRegistry(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 1, "el registro con el súper admin debe guardarse")
}

func TestLoad_FuerzaRolAdminDelSuperAdmin(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.SaveUserRegistry(context.Background(), []*entity.User{
		{Name: "Info", Email: "INFO@playabrava.com", PasswordHash: "x", Department: entity.DepartmentDireccion, Role: entity.RoleUser},
	}))
	r := registry.New(store, access.MustNewPolicy(), zerolog.Nop(), registry.Options{HashCost: bcrypt.MinCost})
	require.NoError(t, r.Load(context.Background()))

	u, ok := r.Lookup(entity.SuperAdminEmail)
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Len(t, r.Snapshot(), 1, "no debe duplicarse la cuenta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_AltaCorrecta(t *testing.T) {
	r, _ := newRegistry(t)

	u, err := r.Register(context.Background(), ana())
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, entity.DepartmentRecepcion, u.Department)
	assert.Equal(t, entity.RoleUser, u.Role, "el rol por defecto es USER")
	assert.NotEqual(t, "secreto1", u.PasswordHash, "el password nunca se guarda en claro")
}

// Escenario E: emails que solo difieren en mayúsculas colisionan.
func TestRegister_EmailDuplicadoSinDistinguirMayusculas(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	_, err := r.Register(ctx, ana())
	require.NoError(t, err)
	_, err = r.Register(ctx, dto.CreateUserRequest{
		Name: "Luis", Email: "luis@playabrava.com", Password: "x", Department: "LIMPIEZA",
	})
	require.NoError(t, err)

	dup := ana()
	dup.Name = "Ana Bis"
	dup.Email = "ANA@PlayaBrava.com"
	_, err = r.Register(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, r.Snapshot(), 3)
}

func TestRegister_CamposObligatorios(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()

	for name, in := range map[string]dto.CreateUserRequest{
		"sin nombre":   {Email: "a@b.c", Password: "x", Department: "SSTT"},
		"sin email":    {Name: "A", Password: "x", Department: "SSTT"},
		"sin password": {Name: "A", Email: "a@b.c", Department: "SSTT"},
		"departamento": {Name: "A", Email: "a@b.c", Password: "x", Department: "PISCINA"},
		"rol":          {Name: "A", Email: "a@b.c", Password: "x", Department: "SSTT", Role: "ROOT"},
	} {
		_, err := r.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestRegister_AceptaEtiquetaDeDepartamento(t *testing.T) {
	r, _ := newRegistry(t)
	in := ana()
	in.Department = "Servicios Técnicos (SSTT)"

	u, err := r.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.DepartmentSSTT, u.Department)
}

func TestRegister_FalloDeGuardadoEsAviso(t *testing.T) {
	r, store := newRegistry(t)
	store.SetFailSaves(errors.New("redis caído"))

	u, err := r.Register(context.Background(), ana())
	require.Error(t, err)
	assert.True(t, domain.IsPersistWarning(err))
	require.NotNil(t, u)

	_, ok := r.Lookup("ana@playabrava.com")
	assert.True(t, ok, "el alta se conserva en memoria aunque falle el guardado")
}

func TestCreateUser_SoloAdmin(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.CreateUser(context.Background(), entity.RoleUser, ana())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, ok := r.Lookup("ana@playabrava.com")
	assert.False(t, ok)

	_, err = r.CreateUser(context.Background(), entity.RoleAdmin, ana())
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate(t *testing.T) {
	r, _ := newRegistry(t)
	_, err := r.Register(context.Background(), ana())
	require.NoError(t, err)

	u, ok := r.Authenticate("ANA@playabrava.com", "secreto1")
	require.True(t, ok, "el email no distingue mayúsculas")
	assert.Equal(t, "Ana", u.Name)

	cases := []struct{ email, password string }{
		{"ana@playabrava.com", "Secreto1"},
		{"ana@playabrava.com", "secreto1 "},
		{"ana@playabrava.com", ""},
		{"nadie@playabrava.com", "secreto1"},
	}
	for _, c := range cases {
		u, ok := r.Authenticate(c.email, c.password)
		assert.False(t, ok, "%s / %q", c.email, c.password)
		assert.Nil(t, u)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SetRole
// ──────────────────────────────────────────────────────────────────────────────

func TestSetRole_AdminPromueveUsuario(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()
	_, err := r.Register(ctx, ana())
	require.NoError(t, err)

	u, err := r.SetRole(ctx, entity.RoleAdmin, "Ana@playabrava.com", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestSetRole_UserNoPuedeCambiarRoles(t *testing.T) {
	r, _ := newRegistry(t)
	ctx := context.Background()
	_, err := r.Register(ctx, ana())
	require.NoError(t, err)

	_, err = r.SetRole(ctx, entity.RoleUser, "ana@playabrava.com", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, _ := r.Lookup("ana@playabrava.com")
	assert.Equal(t, entity.RoleUser, u.Role)
}

func TestSetRole_SuperAdminProtegido(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.SetRole(context.Background(), entity.RoleAdmin, "info@playabrava.com", entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrProtectedAccount)

	u, _ := r.Lookup(entity.SuperAdminEmail)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestSetRole_UsuarioInexistente(t *testing.T) {
	r, _ := newRegistry(t)
	_, err := r.SetRole(context.Background(), entity.RoleAdmin, "nadie@playabrava.com", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_SoloAdmin(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.List(entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users, err := r.List(entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
