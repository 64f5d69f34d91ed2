package fixtures_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/fixtures"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

const sample = `
users:
  - name: Ana
    email: ana@playabrava.com
    password: secreto1
    department: Recepción
incidents:
  - id: INC-2026-001
    title: Farola fundida
    description: No enciende
    location: Parcela 12
    priority: Media
    category: PARCELAS
    reporter: Ana
    created_at: 2026-10-01T08:30:00Z
  - id: INC-2026-002
    title: Ducha fría
    description: Sin agua caliente
    location: Sanitarios B
    priority: CRITICA
    status: En Proceso
    category: SANITARIOS
    reporter: Luis
    reporter_department: SSTT
    created_ago: 2h
    comments:
      - author: Jefe Mtto
        text: Revisando caldera
        ago: 1h
    ai_analysis:
      summary: Caldera
      suggested_steps: [Revisar piloto]
`

func TestParse_YConstruccion(t *testing.T) {
	f, err := fixtures.Parse([]byte(sample))
	require.NoError(t, err)

	reqs := f.UserRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "ana@playabrava.com", reqs[0].Email)

	list, err := f.BuildIncidents(now)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// más reciente primero
	assert.Equal(t, "INC-2026-002", list[0].ID)
	assert.Equal(t, entity.StatusEnProceso, list[0].Status)
	assert.Equal(t, entity.PriorityCritica, list[0].Priority)
	assert.Equal(t, entity.DepartmentSSTT, list[0].ReporterDepartment)
	assert.Equal(t, now.Add(-2*time.Hour), list[0].CreatedAt)
	require.Len(t, list[0].Comments, 1)
	assert.Equal(t, now.Add(-time.Hour), list[0].Comments[0].Timestamp)
	assert.Equal(t, list[0].Comments[0].Timestamp, list[0].UpdatedAt)
	require.NotNil(t, list[0].AIAnalysis)
	assert.Equal(t, []string{"Revisar piloto"}, list[0].AIAnalysis.SuggestedSteps)

	assert.Equal(t, entity.StatusPendiente, list[1].Status, "sin estado queda PENDIENTE")
	assert.Equal(t, entity.PriorityMedia, list[1].Priority)
	assert.True(t, list[1].CreatedAt.Equal(time.Date(2026, time.October, 1, 8, 30, 0, 0, time.UTC)))
	assert.Empty(t, list[1].StatusHistory)
}

func TestParse_CampoDesconocido(t *testing.T) {
	_, err := fixtures.Parse([]byte("usuarios: []\n"))
	assert.Error(t, err)
}

func TestBuildIncidents_Errores(t *testing.T) {
	cases := map[string]string{
		"prioridad":  "incidents:\n  - {id: A, title: T, priority: URGENTE, category: PARCELAS}\n",
		"categoría":  "incidents:\n  - {id: A, title: T, priority: BAJA, category: PISCINA}\n",
		"duplicado":  "incidents:\n  - {id: A, title: T, priority: BAJA, category: PARCELAS}\n  - {id: A, title: U, priority: BAJA, category: PARCELAS}\n",
		"sin título": "incidents:\n  - {id: A, priority: BAJA, category: PARCELAS}\n",
		"duración":   "incidents:\n  - {id: A, title: T, priority: BAJA, category: PARCELAS, created_ago: ayer}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := fixtures.Parse([]byte(doc))
			require.NoError(t, err)
			_, err = f.BuildIncidents(now)
			assert.Error(t, err)
		})
	}
}

func TestMerge(t *testing.T) {
	older := &entity.Incident{ID: "INC-2026-001", CreatedAt: now.Add(-48 * time.Hour)}
	newer := &entity.Incident{ID: "INC-2026-005", CreatedAt: now}
	dupe := &entity.Incident{ID: "INC-2026-001", Title: "otra", CreatedAt: now.Add(-time.Hour)}
	mid := &entity.Incident{ID: "INC-2024-003", CreatedAt: now.Add(-24 * time.Hour)}

	merged, added := fixtures.Merge([]*entity.Incident{newer, older}, []*entity.Incident{dupe, mid}, false)
	assert.Equal(t, 1, added)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"INC-2026-005", "INC-2024-003", "INC-2026-001"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
	assert.Empty(t, merged[2].Title, "el existente no se sobrescribe")

	replaced, added := fixtures.Merge([]*entity.Incident{newer}, []*entity.Incident{mid}, true)
	assert.Equal(t, 1, added)
	require.Len(t, replaced, 1)
	assert.Equal(t, "INC-2024-003", replaced[0].ID)
}

func TestLoad_FicheroDelRepositorio(t *testing.T) {
	f, err := fixtures.Load("../../../fixtures/playa_brava.yaml")
	require.NoError(t, err)
	list, err := f.BuildIncidents(now)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "INC-2024-003", list[0].ID)
	assert.NotEmpty(t, f.UserRequests())
}
