package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/pkg/config"
)

// ─── poolConfig ──────────────────────────────────────────────────────────────

func TestPoolConfig_Defaults(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "x", DBName: "camping", SSLMode: "disable"}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 10, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	assert.Equal(t, 10*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "camping", pc.ConnConfig.Database)
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLYLimites(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL:    "postgres://u:p@supabase.example:6543/postgres?sslmode=disable&application_name=panel",
		MaxConns:       3,
		ConnectTimeout: 2,
		PreferIPv4:     true,
	}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pc.MaxConns)
	assert.Equal(t, "supabase.example", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)
	assert.Equal(t, 2*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "panel", pc.ConnConfig.RuntimeParams["application_name"], "no pisa el de la URL")
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}

// ─── pgError ─────────────────────────────────────────────────────────────────

func TestPgError_TraduceCodigos(t *testing.T) {
	dup := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "usuarios_email_key"}
	err := pgError("save usuarios", dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Contains(t, err.Error(), "usuarios_email_key")

	check := &pgconn.PgError{Code: codeCheckViolation, Message: "viola rol_check"}
	assert.ErrorIs(t, pgError("save usuarios", check), domain.ErrInvalidInput)

	other := errors.New("conexión cerrada")
	err = pgError("save incidencias", other)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "save incidencias: conexión cerrada", err.Error())
}
