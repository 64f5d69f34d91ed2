package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa SuggestionService.
var _ ports.SuggestionService = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	// DefaultAnthropicModel modelo por defecto.
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
)

// AnthropicService adaptador de SuggestionService sobre la API REST de Anthropic (Claude).
// Usa net/http; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. baseURL vacío = API pública.
// Con apiKey vacía las llamadas devuelven ports.ErrNotConfigured.
func NewAnthropicService(apiKey, model, baseURL string) *AnthropicService {
	if model == "" {
		model = DefaultAnthropicModel
	}
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// El caso de uso impone además un context.WithTimeout de 15 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Protocolo Messages API ────────────────────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Analyze envía la descripción a Claude y extrae el JSON de la respuesta.
func (s *AnthropicService) Analyze(ctx context.Context, description, location string) (*dto.AIAnalysisResult, error) {
	if s.apiKey == "" {
		return nil, ports.ErrNotConfigured
	}
	text, err := s.complete(ctx, buildAnalyzePrompt(description, location)+"\n"+analyzeJSONRules, 1024)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return parseAnalysis(text)
}

// SuggestSolution devuelve el plan de acción en Markdown.
func (s *AnthropicService) SuggestSolution(ctx context.Context, title, description, category string) (string, error) {
	if s.apiKey == "" {
		return "", ports.ErrNotConfigured
	}
	return s.complete(ctx, buildSolutionPrompt(title, description, category), 2048)
}

// complete una sola vuelta user → assistant; devuelve el texto concatenado.
func (s *AnthropicService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var b strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
