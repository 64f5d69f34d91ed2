package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryResolution resultado crudo de la analítica por categoría en un rango de fechas.
// Lo produce la DB (solo backend postgres).
type CategoryResolution struct {
	Category        string
	Total           int
	Pending         int
	Resolved        int
	Share           decimal.Decimal // Total / total del rango * 100, 2 decimales
	AvgHoursToClose decimal.Decimal // media de updated_at - created_at de las finalizadas
}

// AnalyticsRepository consultas de solo lectura sobre el histórico de incidencias.
type AnalyticsRepository interface {
	ResolutionByCategory(ctx context.Context, from, to time.Time) ([]CategoryResolution, error)
}
