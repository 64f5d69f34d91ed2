package snapshot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/snapshot"
)

func TestIncidents_IdaYVuelta(t *testing.T) {
	ts := time.Date(2026, 7, 14, 9, 15, 30, 123_000_000, time.UTC)
	in := []*entity.Incident{{
		ID: "INC-2026-001", Title: "Farola", Description: "No enciende", Location: "Parcela 42",
		Priority: entity.PriorityAlta, Status: entity.StatusEnProceso, Category: entity.CategoryParcelas,
		CreatedAt: ts, UpdatedAt: ts.Add(time.Hour), Reporter: "Ana", ReporterDepartment: entity.DepartmentSSTT,
		Comments: []entity.Comment{{ID: "c1", Author: "Ana", Text: "hola", Timestamp: ts, IsAIGenerated: true}},
		StatusHistory: []entity.StatusHistoryEntry{{
			ID: "h1", PreviousStatus: entity.StatusPendiente, NewStatus: entity.StatusEnProceso, ChangedBy: "Dirección", Timestamp: ts,
		}},
		AIAnalysis: &entity.AIAnalysis{Summary: "s", SuggestedSteps: []string{"a"}},
	}}

	data, err := snapshot.EncodeIncidents(in)
	require.NoError(t, err)
	out, err := snapshot.DecodeIncidents(data)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
	assert.True(t, out[0].CreatedAt.Equal(ts), "precisión de milisegundos")
}

func TestDecodeIncidents_MapeoTotal(t *testing.T) {
	data := []byte(`[{"id":"INC-1","priority":"Crítica","status":"Finalizada","category":"???","reporterDepartment":"Dirección",
		"createdAt":"2026-07-14T09:00:00Z","updatedAt":"2026-07-14T08:00:00Z",
		"statusHistory":[{"id":"h","previousStatus":"Pendiente","newStatus":"raro"}]}]`)

	out, err := snapshot.DecodeIncidents(data)
	require.NoError(t, err)
	require.Len(t, out, 1)
	inc := out[0]
	assert.Equal(t, entity.PriorityCritica, inc.Priority)
	assert.Equal(t, entity.StatusFinalizada, inc.Status)
	assert.Equal(t, snapshot.DefaultCategory, inc.Category)
	assert.Equal(t, entity.DepartmentDireccion, inc.ReporterDepartment)
	assert.Equal(t, inc.CreatedAt, inc.UpdatedAt, "updatedAt nunca anterior a createdAt")
	assert.Equal(t, snapshot.DefaultStatus, inc.StatusHistory[0].NewStatus)
	assert.NotNil(t, inc.Comments)
}

func TestDecodeIncidents_Vacio(t *testing.T) {
	out, err := snapshot.DecodeIncidents(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = snapshot.DecodeIncidents([]byte("{roto"))
	assert.Error(t, err)
}

func TestUsuarios(t *testing.T) {
	users := []*entity.User{{Name: "Ana", Email: "ana@playabrava.com", PasswordHash: "$2a$hash", Department: entity.DepartmentLimpieza, Role: entity.RoleUser}}
	data, err := snapshot.EncodeUsers(users)
	require.NoError(t, err)
	out, err := snapshot.DecodeUsers(data)
	require.NoError(t, err)
	assert.Equal(t, users, out)

	out, err = snapshot.DecodeUsers([]byte(`[{"name":"X","email":"x@y","department":"Cocina","role":"jefe"}]`))
	require.NoError(t, err)
	assert.Equal(t, snapshot.DefaultDepartment, out[0].Department)
	assert.Equal(t, snapshot.DefaultRole, out[0].Role)
}

func TestSesion(t *testing.T) {
	data, err := snapshot.EncodeUser(nil)
	require.NoError(t, err)
	u, err := snapshot.DecodeUser(data)
	require.NoError(t, err)
	assert.Nil(t, u)

	data, err = snapshot.EncodeUser(&entity.User{Name: "Ana", Email: "ana@playabrava.com", Department: entity.DepartmentRecepcion, Role: entity.RoleAdmin})
	require.NoError(t, err)
	u, err = snapshot.DecodeUser(data)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}
