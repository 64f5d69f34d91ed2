package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/ports"
	"github.com/playabrava/gestor-camping/internal/application/usecase"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock del puerto
// ──────────────────────────────────────────────────────────────────────────────

type mockSuggestions struct {
	analysis    *dto.AIAnalysisResult
	solution    string
	err         error
	hasDeadline bool
}

func (m *mockSuggestions) Analyze(ctx context.Context, _, _ string) (*dto.AIAnalysisResult, error) {
	_, m.hasDeadline = ctx.Deadline()
	return m.analysis, m.err
}

func (m *mockSuggestions) SuggestSolution(ctx context.Context, _, _, _ string) (string, error) {
	_, m.hasDeadline = ctx.Deadline()
	return m.solution, m.err
}

var _ ports.SuggestionService = (*mockSuggestions)(nil)

func setup(t *testing.T, m *mockSuggestions) (*usecase.AIUseCase, *incidents.Store, *memory.Store, string) {
	t.Helper()
	mem := memory.NewStore()
	store := incidents.NewStore(mem, access.MustNewPolicy(), zerolog.Nop())
	require.NoError(t, store.Load(context.Background()))
	inc, err := store.Create(context.Background(), incidents.NewIncident{
		Title: "Fuga", Description: "Gotea la cisterna", Location: "Aseos zona B",
		Priority: entity.PriorityAlta, Category: entity.CategorySanitarios,
	}, "Ana", entity.DepartmentLimpieza)
	require.NoError(t, err)
	return usecase.NewAIUseCase(m, store, zerolog.Nop()), store, mem, inc.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Analyze
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyze_RespuestaDelModelo(t *testing.T) {
	m := &mockSuggestions{analysis: &dto.AIAnalysisResult{
		Priority: "CRITICA", Category: "SANITARIOS", TitleSuggestion: "Fuga de agua", SuggestedSteps: []string{"Cerrar llave"},
	}}
	uc, _, _, _ := setup(t, m)

	got, err := uc.Analyze(context.Background(), dto.AIAnalyzeRequest{Description: "Sale agua", Location: "Aseos"})
	require.NoError(t, err)
	assert.Equal(t, "CRITICA", got.Priority)
	assert.Equal(t, "Fuga de agua", got.TitleSuggestion)
	assert.False(t, got.Fallback)
	assert.True(t, m.hasDeadline, "la llamada debe llevar timeout")
}

func TestAnalyze_SinAPIKey(t *testing.T) {
	uc, _, _, _ := setup(t, &mockSuggestions{err: ports.ErrNotConfigured})

	got, err := uc.Analyze(context.Background(), dto.AIAnalyzeRequest{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "MEDIA", got.Priority)
	assert.Equal(t, "PARCELAS", got.Category)
	assert.Equal(t, "Nueva Incidencia", got.TitleSuggestion)
	assert.Equal(t, []string{"Verificar in situ", "Contactar mantenimiento"}, got.SuggestedSteps)
	assert.True(t, got.Fallback)
}

func TestAnalyze_ErrorDelServicio(t *testing.T) {
	uc, _, _, _ := setup(t, &mockSuggestions{err: errors.New("503")})

	got, err := uc.Analyze(context.Background(), dto.AIAnalyzeRequest{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Revisión Manual", got.TitleSuggestion)
	assert.Equal(t, []string{"Acudir al lugar", "Evaluar daños"}, got.SuggestedSteps)
}

func TestAnalyze_NormalizaValoresDesconocidos(t *testing.T) {
	uc, _, _, _ := setup(t, &mockSuggestions{analysis: &dto.AIAnalysisResult{
		Priority: "Urgentísima", Category: "Piscina", TitleSuggestion: "x",
	}})

	got, err := uc.Analyze(context.Background(), dto.AIAnalyzeRequest{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "MEDIA", got.Priority)
	assert.Equal(t, "PARCELAS", got.Category)
	assert.NotNil(t, got.SuggestedSteps)
}

func TestAnalyze_DescripcionObligatoria(t *testing.T) {
	uc, _, _, _ := setup(t, &mockSuggestions{})
	_, err := uc.Analyze(context.Background(), dto.AIAnalyzeRequest{Description: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SuggestSolution
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggestSolution_TextosDeFallo(t *testing.T) {
	cases := map[string]struct {
		m    *mockSuggestions
		want string
	}{
		"sin api key": {&mockSuggestions{err: ports.ErrNotConfigured}, usecase.SolutionNotConfigured},
		"error":       {&mockSuggestions{err: context.DeadlineExceeded}, usecase.SolutionServiceError},
		"vacío":       {&mockSuggestions{solution: "  "}, usecase.SolutionEmpty},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			uc, store, _, id := setup(t, tc.m)
			got, err := uc.SuggestSolution(context.Background(), id, true)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Solution)
			assert.Nil(t, got.Comment, "los textos de fallo no se guardan")

			inc, err := store.Get(id)
			require.NoError(t, err)
			assert.Empty(t, inc.Comments)
		})
	}
}

func TestSuggestSolution_GuardaComentarioIA(t *testing.T) {
	uc, store, _, id := setup(t, &mockSuggestions{solution: "1. Cerrar llave de paso"})

	got, err := uc.SuggestSolution(context.Background(), id, true)
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	require.Len(t, got.Comment.Comments, 1)
	assert.True(t, got.Comment.Comments[0].IsAIGenerated)

	inc, err := store.Get(id)
	require.NoError(t, err)
	require.Len(t, inc.Comments, 1)
	assert.Equal(t, incidents.AIAuthor, inc.Comments[0].Author)
}

func TestSuggestSolution_SinGuardar(t *testing.T) {
	uc, store, _, id := setup(t, &mockSuggestions{solution: "Plan"})

	got, err := uc.SuggestSolution(context.Background(), id, false)
	require.NoError(t, err)
	assert.Equal(t, "Plan", got.Solution)
	assert.Nil(t, got.Comment)

	inc, _ := store.Get(id)
	assert.Empty(t, inc.Comments)
}

func TestSuggestSolution_AvisoDeGuardado(t *testing.T) {
	uc, _, mem, id := setup(t, &mockSuggestions{solution: "Plan"})
	mem.SetFailSaves(errors.New("sin conexión"))

	got, err := uc.SuggestSolution(context.Background(), id, true)
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	assert.NotEmpty(t, got.Comment.Warning)
}

func TestSuggestSolution_IncidenciaDesconocida(t *testing.T) {
	uc, _, _, _ := setup(t, &mockSuggestions{solution: "Plan"})
	_, err := uc.SuggestSolution(context.Background(), "INC-1999-001", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
