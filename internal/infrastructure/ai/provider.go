package ai

import (
	"context"
	"fmt"

	"github.com/playabrava/gestor-camping/internal/application/ports"
	"github.com/playabrava/gestor-camping/pkg/config"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// New adaptador según cfg.Provider. Sin API key el adaptador se crea igualmente
// y responde ports.ErrNotConfigured en cada llamada.
func New(ctx context.Context, cfg config.AIConfig) (ports.SuggestionService, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
	case ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel, ""), nil
	}
	return nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
}
