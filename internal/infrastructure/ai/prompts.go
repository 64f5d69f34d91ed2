// Package ai contiene los adaptadores de ports.SuggestionService: Gemini
// (SDK google.golang.org/genai) y Anthropic (API REST Messages).
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

const analyzePrompt = `Actúa como un Jefe de Mantenimiento de un Camping Resort. Analiza la siguiente descripción de una incidencia.

Ubicación: %q
Descripción: %q

Determina:
1. Prioridad: %s.
2. Categoría exacta (solo una): %s.
3. Título corto y profesional.
4. 3 pasos inmediatos para el equipo de mantenimiento.`

const analyzeJSONRules = `
Devuelve ÚNICAMENTE un objeto JSON (sin markdown) con esta estructura exacta:
{"priority": "<prioridad>", "category": "<categoría>", "titleSuggestion": "<título>", "suggestedSteps": ["<paso>", ...]}`

const solutionPrompt = `Eres experto en mantenimiento de instalaciones turísticas y campings.
Proporciona un plan de acción técnico y conciso para resolver esta incidencia en la categoría: %s.
Usa formato Markdown.

Título: %s
Descripción: %s`

// analysisPayload JSON que se espera del modelo.
type analysisPayload struct {
	Priority        string   `json:"priority"`
	Category        string   `json:"category"`
	TitleSuggestion string   `json:"titleSuggestion"`
	SuggestedSteps  []string `json:"suggestedSteps"`
}

// jsonBlockRe primer objeto JSON del texto aunque venga envuelto en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func buildAnalyzePrompt(description, location string) string {
	return fmt.Sprintf(analyzePrompt, location, description,
		strings.Join(priorityLabels(), ", "), strings.Join(categoryLabels(), ", "))
}

func buildSolutionPrompt(title, description, category string) string {
	if c, ok := entity.ParseCategory(category); ok {
		category = c.Label()
	}
	return fmt.Sprintf(solutionPrompt, category, title, description)
}

// parseAnalysis traduce las etiquetas devueltas por el modelo a códigos. Lo que
// no corresponde a ningún valor se devuelve tal cual; el caso de uso lo normaliza.
func parseAnalysis(raw string) (*dto.AIAnalysisResult, error) {
	raw = extractJSON(raw)
	if raw == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}
	var p analysisPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, raw)
	}

	out := &dto.AIAnalysisResult{
		Priority:        p.Priority,
		Category:        p.Category,
		TitleSuggestion: strings.TrimSpace(p.TitleSuggestion),
		SuggestedSteps:  p.SuggestedSteps,
	}
	if v, ok := entity.ParsePriority(p.Priority); ok {
		out.Priority = string(v)
	}
	if v, ok := entity.ParseCategory(p.Category); ok {
		out.Category = string(v)
	}
	return out, nil
}

func priorityLabels() []string {
	out := make([]string, 0, len(entity.Priorities))
	for _, p := range entity.Priorities {
		out = append(out, p.Label())
	}
	return out
}

func categoryLabels() []string {
	out := make([]string, 0, len(entity.Categories))
	for _, c := range entity.Categories {
		out = append(out, c.Label())
	}
	return out
}

// extractJSON quita el bloque ```json ... ``` si lo hay y se queda con el primer { ... }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
