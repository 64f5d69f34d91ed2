package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ─── seed ────────────────────────────────────────────────────────────────────

func TestSeed_CargaUsuariosEIncidencias(t *testing.T) {
	out, err := runCLI(t, "seed", "../../fixtures/playa_brava.yaml", "--replace=false")
	require.NoError(t, err)
	assert.Contains(t, out, "usuarios nuevos: 3, incidencias añadidas: 3, total: 3")
}

func TestSeed_FicheroInexistente(t *testing.T) {
	_, err := runCLI(t, "seed", "no-existe.yaml")
	assert.Error(t, err)
}

// ─── export ──────────────────────────────────────────────────────────────────

func TestExport_CSVEnDirectorio(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "export", "--format", "csv", "--out", dir, "--encoding", "utf-8")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".csv"))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "ID,"))
}

func TestExport_FormatoDesconocido(t *testing.T) {
	_, err := runCLI(t, "export", "--format", "xlsx", "--out", t.TempDir(), "--encoding", "utf-8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato no soportado")
}

func TestExport_EncodingDesconocido(t *testing.T) {
	_, err := runCLI(t, "export", "--format", "csv", "--out", t.TempDir(), "--encoding", "latin-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding no soportado")
}

// ─── users ───────────────────────────────────────────────────────────────────

func TestUsersSetRole_RolInvalido(t *testing.T) {
	_, err := runCLI(t, "users", "set-role", "alguien@playabrava.com", "JEFE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rol no válido")
}

func TestUsersSetRole_UsuarioInexistente(t *testing.T) {
	_, err := runCLI(t, "users", "set-role", "nadie@playabrava.com", "ADMIN")
	assert.Error(t, err)
}

func TestUsersList_Cabecera(t *testing.T) {
	out, err := runCLI(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "EMAIL")
}
