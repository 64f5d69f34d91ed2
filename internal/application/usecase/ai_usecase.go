package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/ports"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// AITimeout límite de cada llamada al servicio de IA.
const AITimeout = 15 * time.Second

// Textos devueltos cuando el servicio de IA no puede responder.
const (
	SolutionNotConfigured = "Falta la API Key. No se puede generar solución."
	SolutionServiceError  = "Error conectando con el servicio de IA."
	SolutionEmpty         = "No se pudo generar una solución."
)

// AIUseCase orquesta las sugerencias de IA. Nunca propaga errores del servicio:
// los sustituye por valores por defecto y los registra.
type AIUseCase struct {
	svc   ports.SuggestionService
	store *incidents.Store
	log   zerolog.Logger
}

// NewAIUseCase store solo se usa para guardar la solución como comentario.
func NewAIUseCase(svc ports.SuggestionService, store *incidents.Store, log zerolog.Logger) *AIUseCase {
	return &AIUseCase{svc: svc, store: store, log: log.With().Str("component", "ai").Logger()}
}

// Analyze sugiere prioridad, categoría, título y pasos para una descripción.
func (uc *AIUseCase) Analyze(ctx context.Context, req dto.AIAnalyzeRequest) (*dto.AIAnalysisResult, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description es obligatorio", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, AITimeout)
	defer cancel()

	result, err := uc.svc.Analyze(ctx, req.Description, req.Location)
	switch {
	case errors.Is(err, ports.ErrNotConfigured):
		uc.log.Warn().Msg("sin API key de IA: análisis por defecto")
		return unconfiguredAnalysis(), nil
	case err != nil:
		uc.log.Error().Err(err).Msg("análisis IA fallido")
		return failedAnalysis(), nil
	case result == nil:
		return failedAnalysis(), nil
	}
	return normalizeAnalysis(result), nil
}

// SuggestSolution plan de acción en Markdown para la incidencia id.
// Con save=true el plan se añade como comentario de la IA (salvo textos de fallo).
func (uc *AIUseCase) SuggestSolution(ctx context.Context, id string, save bool) (*dto.AISolutionResponse, error) {
	inc, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}

	solution, ok := uc.solution(ctx, inc)
	out := &dto.AISolutionResponse{Solution: solution}
	if !save || !ok {
		return out, nil
	}

	updated, err := uc.store.AddAIComment(ctx, id, solution)
	if updated != nil {
		resp := dto.IncidentFromEntity(updated)
		if domain.IsPersistWarning(err) {
			resp.Warning = err.Error()
			err = nil
		}
		out.Comment = &resp
	}
	return out, err
}

// solution devuelve el texto y si procede del modelo.
func (uc *AIUseCase) solution(ctx context.Context, inc *entity.Incident) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, AITimeout)
	defer cancel()

	text, err := uc.svc.SuggestSolution(ctx, inc.Title, inc.Description, string(inc.Category))
	switch {
	case errors.Is(err, ports.ErrNotConfigured):
		uc.log.Warn().Str("id", inc.ID).Msg("sin API key de IA")
		return SolutionNotConfigured, false
	case err != nil:
		uc.log.Error().Err(err).Str("id", inc.ID).Msg("solución IA fallida")
		return SolutionServiceError, false
	case strings.TrimSpace(text) == "":
		return SolutionEmpty, false
	}
	return text, true
}

func unconfiguredAnalysis() *dto.AIAnalysisResult {
	return &dto.AIAnalysisResult{
		Priority:        string(entity.PriorityMedia),
		Category:        string(entity.CategoryParcelas),
		TitleSuggestion: "Nueva Incidencia",
		SuggestedSteps:  []string{"Verificar in situ", "Contactar mantenimiento"},
		Fallback:        true,
	}
}

func failedAnalysis() *dto.AIAnalysisResult {
	return &dto.AIAnalysisResult{
		Priority:        string(entity.PriorityMedia),
		Category:        string(entity.CategoryParcelas),
		TitleSuggestion: "Revisión Manual",
		SuggestedSteps:  []string{"Acudir al lugar", "Evaluar daños"},
		Fallback:        true,
	}
}

// normalizeAnalysis valores fuera de los enums pasan a MEDIA / PARCELAS.
func normalizeAnalysis(r *dto.AIAnalysisResult) *dto.AIAnalysisResult {
	out := *r
	if p, ok := entity.ParsePriority(r.Priority); ok {
		out.Priority = string(p)
	} else {
		out.Priority = string(entity.PriorityMedia)
	}
	if c, ok := entity.ParseCategory(r.Category); ok {
		out.Category = string(c)
	} else {
		out.Category = string(entity.CategoryParcelas)
	}
	if out.SuggestedSteps == nil {
		out.SuggestedSteps = []string{}
	}
	return &out
}
