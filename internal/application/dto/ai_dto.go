package dto

// AIAnalyzeRequest descripción y lugar a analizar.
type AIAnalyzeRequest struct {
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
}

// AIAnalysisResult sugerencia de triaje. Nunca es autoritativa.
type AIAnalysisResult struct {
	Priority        string   `json:"priority"`
	Category        string   `json:"category"`
	TitleSuggestion string   `json:"title_suggestion"`
	SuggestedSteps  []string `json:"suggested_steps"`
	Fallback        bool     `json:"fallback,omitempty"` // true si se usaron valores por defecto
}

// AISolutionResponse plan de acción en texto libre (Markdown).
type AISolutionResponse struct {
	Solution string            `json:"solution"`
	Comment  *IncidentResponse `json:"incident,omitempty"` // presente si se guardó como comentario
}
