package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa SuggestionService.
var _ ports.SuggestionService = (*GeminiService)(nil)

// DefaultGeminiModel modelo por defecto.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiService adaptador de SuggestionService sobre el SDK oficial de Gemini.
// El análisis usa response schema con enums para obtener JSON directamente.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService construye el adaptador. Con apiKey vacía no crea cliente y
// las llamadas devuelven ports.ErrNotConfigured. baseURL solo se usa en tests.
func NewGeminiService(ctx context.Context, apiKey, model, baseURL string) (*GeminiService, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	s := &GeminiService{model: model}
	if apiKey == "" {
		return s, nil
	}

	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("AI: crear cliente Gemini: %w", err)
	}
	s.client = client
	return s, nil
}

// Analyze pide prioridad, categoría, título y pasos con salida JSON restringida.
func (s *GeminiService) Analyze(ctx context.Context, description, location string) (*dto.AIAnalysisResult, error) {
	if s.client == nil {
		return nil, ports.ErrNotConfigured
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(buildAnalyzePrompt(description, location)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema(),
			Temperature:      genai.Ptr[float32](0.2),
		})
	if err != nil {
		return nil, fmt.Errorf("AI: Gemini analyze: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return parseAnalysis(text)
}

// SuggestSolution devuelve el plan de acción en Markdown; "" si el modelo no respondió texto.
func (s *GeminiService) SuggestSolution(ctx context.Context, title, description, category string) (string, error) {
	if s.client == nil {
		return "", ports.ErrNotConfigured
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(buildSolutionPrompt(title, description, category)), nil)
	if err != nil {
		return "", fmt.Errorf("AI: Gemini solution: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"priority":        {Type: genai.TypeString, Enum: priorityLabels()},
			"category":        {Type: genai.TypeString, Enum: categoryLabels()},
			"titleSuggestion": {Type: genai.TypeString},
			"suggestedSteps": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"priority", "category", "titleSuggestion", "suggestedSteps"},
	}
}
