package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/internal/infrastructure/snapshot"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre la tabla incidencias.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ResolutionByCategory agrupa las incidencias creadas en [from, to) por categoría.
// La cuota y el tiempo medio de cierre se calculan en NUMERIC y se leen como decimal.
func (r *AnalyticsRepo) ResolutionByCategory(ctx context.Context, from, to time.Time) ([]repository.CategoryResolution, error) {
	const query = `
	WITH rango AS (
	    SELECT * FROM incidencias WHERE created_at >= $1 AND created_at < $2
	)
	SELECT
	    categoria,
	    COUNT(*)                                                  AS total,
	    COUNT(*) FILTER (WHERE estado = 'PENDIENTE')              AS pendientes,
	    COUNT(*) FILTER (WHERE estado = 'FINALIZADA')             AS finalizadas,
	    ROUND(COUNT(*)::NUMERIC * 100 / NULLIF((SELECT COUNT(*) FROM rango), 0), 2) AS cuota,
	    COALESCE(ROUND(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600)
	        FILTER (WHERE estado = 'FINALIZADA')::NUMERIC, 2), 0)  AS horas_cierre
	FROM rango
	GROUP BY categoria
	ORDER BY total DESC, categoria`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.ResolutionByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryResolution
	for rows.Next() {
		var row repository.CategoryResolution
		if err := rows.Scan(
			&row.Category,
			&row.Total,
			&row.Pending,
			&row.Resolved,
			&row.Share,
			&row.AvgHoursToClose,
		); err != nil {
			return nil, fmt.Errorf("analytics.ResolutionByCategory scan: %w", err)
		}
		row.Category = string(snapshot.Category(row.Category))
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ResolutionByCategory: %w", err)
	}
	return results, nil
}
