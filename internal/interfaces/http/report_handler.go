package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/reporting"
)

// ReportHandler descarga de informes.
type ReportHandler struct {
	store    *incidents.Store
	exporter *reporting.Exporter
	now      func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(store *incidents.Store, exporter *reporting.Exporter, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{store: store, exporter: exporter, now: now}
}

// CSV godoc
// @Summary      Exportar incidencias a CSV
// @Description  Todas las incidencias, con etiquetas en español. encoding=windows-1252 para abrir en Excel.
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        encoding  query  string  false  "utf-8 (por defecto) o windows-1252"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/incidents.csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	enc, ok := reporting.ParseEncoding(c.Query("encoding"))
	if !ok {
		return validation(c, "encoding debe ser utf-8 o windows-1252")
	}
	body, err := h.exporter.CSV(h.store.List(), enc)
	if err != nil {
		return writeError(c, err)
	}
	now := h.now().In(h.exporter.Location())
	c.Set(fiber.HeaderContentType, fmt.Sprintf("text/csv; charset=%s", enc))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, reporting.CSVFilename(now)))
	return c.Send(body)
}

// PDF godoc
// @Summary      Exportar informe PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/incidents.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	now := h.now().In(h.exporter.Location())
	body, err := h.exporter.PDF(c.Context(), h.store.List(), now)
	if err != nil {
		if errors.Is(err, reporting.ErrPDFDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: err.Error()})
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, reporting.PDFFilename(now)))
	return c.Send(body)
}
