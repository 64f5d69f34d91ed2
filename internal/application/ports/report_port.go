package ports

import (
	"context"
	"time"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// ReportData contenido del informe imprimible.
type ReportData struct {
	GeneratedAt time.Time
	Location    *time.Location
	Summary     dto.StatsSummaryDTO
	Incidents   []*entity.Incident
}

// ReportPDFGenerator genera el informe de incidencias en PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, data ReportData) ([]byte, error)
}
