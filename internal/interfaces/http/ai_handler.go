package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/usecase"
)

// AIHandler sugerencias del asistente de IA. Los fallos del servicio no llegan
// como error: el caso de uso devuelve valores por defecto.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Analyze godoc
// @Summary      Analizar incidencia con IA
// @Description  Sugiere prioridad, categoría, título y pasos a partir de la descripción.
//               Sin API key o con el servicio caído devuelve valores por defecto (fallback=true).
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIAnalyzeRequest  true  "description (obligatorio) y location"
// @Success      200   {object}  dto.AIAnalysisResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/analyze [post]
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AIAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(req.Description) == "" {
		return validation(c, "description es obligatorio")
	}
	result, err := h.uc.Analyze(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// SuggestSolution godoc
// @Summary      Plan de reparación con IA
// @Description  Devuelve un plan en Markdown. Con save=true se añade como comentario del asistente.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID de la incidencia"
// @Param        save  query  bool    false  "Guardar como comentario"
// @Success      200   {object}  dto.AISolutionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incidents/{id}/ai-solution [post]
func (h *AIHandler) SuggestSolution(c *fiber.Ctx) error {
	out, err := h.uc.SuggestSolution(c.Context(), c.Params("id"), c.QueryBool("save", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
