package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

// IncidentRepo instantánea de incidencias sobre la tabla incidencias.
type IncidentRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewIncidentRepository construye el adaptador de persistencia para incidencias.
func NewIncidentRepository(pool *pgxpool.Pool) *IncidentRepo {
	return &IncidentRepo{pool: pool, tx: NewTxRunner(pool)}
}

// LoadIncidents devuelve las incidencias en el orden en que se guardaron.
func (r *IncidentRepo) LoadIncidents(ctx context.Context) ([]*entity.Incident, error) {
	const query = `
		SELECT id, titulo, descripcion, ubicacion, prioridad, estado, categoria,
		       reportado_por, departamento, created_at, updated_at,
		       comentarios, historial, ai_analysis
		FROM incidencias
		ORDER BY posicion, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load incidencias: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Incident, 0)
	for rows.Next() {
		var row incidentRow
		if err := rows.Scan(
			&row.ID, &row.Titulo, &row.Descripcion, &row.Ubicacion,
			&row.Prioridad, &row.Estado, &row.Categoria,
			&row.ReportadoPor, &row.Departamento, &row.CreatedAt, &row.UpdatedAt,
			&row.Comentarios, &row.Historial, &row.AIAnalysis,
		); err != nil {
			return nil, fmt.Errorf("scan incidencia: %w", err)
		}
		inc, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load incidencias: %w", err)
	}
	return out, nil
}

// SaveIncidents reemplaza la tabla por la instantánea en una sola transacción:
// upsert de cada incidencia y borrado de las que ya no están.
func (r *IncidentRepo) SaveIncidents(ctx context.Context, incidents []*entity.Incident) error {
	const upsert = `
		INSERT INTO incidencias (id, titulo, descripcion, ubicacion, prioridad, estado, categoria,
		                         reportado_por, departamento, created_at, updated_at, posicion,
		                         comentarios, historial, ai_analysis)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
		    titulo = EXCLUDED.titulo, descripcion = EXCLUDED.descripcion, ubicacion = EXCLUDED.ubicacion,
		    prioridad = EXCLUDED.prioridad, estado = EXCLUDED.estado, categoria = EXCLUDED.categoria,
		    reportado_por = EXCLUDED.reportado_por, departamento = EXCLUDED.departamento,
		    updated_at = EXCLUDED.updated_at, posicion = EXCLUDED.posicion,
		    comentarios = EXCLUDED.comentarios, historial = EXCLUDED.historial,
		    ai_analysis = EXCLUDED.ai_analysis`

	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		ids := make([]string, 0, len(incidents))
		batch := &pgx.Batch{}
		for i, inc := range incidents {
			params, err := incidentParams(inc, i)
			if err != nil {
				return fmt.Errorf("params incidencia %s: %w", inc.ID, err)
			}
			batch.Queue(upsert, params...)
			ids = append(ids, inc.ID)
		}
		batch.Queue(`DELETE FROM incidencias WHERE NOT (id = ANY($1))`, ids)

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return pgError("save incidencias", err)
		}
		return nil
	})
}
