package ports

import (
	"context"
	"errors"

	"github.com/playabrava/gestor-camping/internal/application/dto"
)

// ErrNotConfigured lo devuelven los adaptadores de IA cuando falta la API key.
var ErrNotConfigured = errors.New("AI: API key no configurada")

// SuggestionService puerto de salida hacia el servicio de IA (Gemini, Anthropic, mock).
// Sus respuestas son sugerencias: el llamador decide si las usa.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type SuggestionService interface {
	// Analyze propone prioridad, categoría, título y pasos a partir de la descripción.
	Analyze(ctx context.Context, description, location string) (*dto.AIAnalysisResult, error)

	// SuggestSolution devuelve un plan de reparación en Markdown breve.
	SuggestSolution(ctx context.Context, title, description, category string) (string, error)
}
