package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/reporting"
)

// StatsHandler métricas del panel de estadísticas.
type StatsHandler struct {
	store *incidents.Store
	loc   *time.Location
	now   func() time.Time
}

// NewStatsHandler loc es la zona horaria de la etiqueta del mes.
func NewStatsHandler(store *incidents.Store, loc *time.Location, now func() time.Time) *StatsHandler {
	if now == nil {
		now = time.Now
	}
	return &StatsHandler{store: store, loc: loc, now: now}
}

// Summary godoc
// @Summary      Resumen de incidencias
// @Description  Contadores, reparto por categoría (con porcentaje), por prioridad y por estado.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsSummaryDTO
// @Router       /api/stats/summary [get]
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(reporting.Summary(h.store.List(), h.now().In(h.loc)))
}
