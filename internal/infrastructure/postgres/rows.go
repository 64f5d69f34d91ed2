package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/snapshot"
)

// incidentRow fila de la tabla incidencias tal como se escanea.
type incidentRow struct {
	ID           string
	Titulo       string
	Descripcion  string
	Ubicacion    string
	Prioridad    string
	Estado       string
	Categoria    string
	ReportadoPor string
	Departamento *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Comentarios  []byte
	Historial    []byte
	AIAnalysis   []byte
}

// toEntity traducción total: estado/prioridad/categoría desconocidos toman el
// valor por defecto del paquete snapshot; JSONB vacío o null = listas vacías.
func (r incidentRow) toEntity() (*entity.Incident, error) {
	rec := snapshot.IncidentRecord{
		ID:           r.ID,
		Title:        r.Titulo,
		Description:  r.Descripcion,
		Location:     r.Ubicacion,
		Priority:     r.Prioridad,
		Status:       r.Estado,
		Category:     r.Categoria,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Reporter:     r.ReportadoPor,
	}
	if r.Departamento != nil {
		rec.ReporterDepartment = *r.Departamento
	}
	if err := unmarshalJSONB(r.Comentarios, &rec.Comments); err != nil {
		return nil, fmt.Errorf("incidencia %s comentarios: %w", r.ID, err)
	}
	if err := unmarshalJSONB(r.Historial, &rec.StatusHistory); err != nil {
		return nil, fmt.Errorf("incidencia %s historial: %w", r.ID, err)
	}
	if err := unmarshalJSONB(r.AIAnalysis, &rec.AIAnalysis); err != nil {
		return nil, fmt.Errorf("incidencia %s ai_analysis: %w", r.ID, err)
	}
	return rec.ToIncident(), nil
}

// incidentParams columnas a escribir, en el orden del INSERT.
func incidentParams(inc *entity.Incident, pos int) ([]any, error) {
	rec := snapshot.FromIncident(inc)
	comments, err := json.Marshal(rec.Comments)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(rec.StatusHistory)
	if err != nil {
		return nil, err
	}
	var ai []byte
	if rec.AIAnalysis != nil {
		if ai, err = json.Marshal(rec.AIAnalysis); err != nil {
			return nil, err
		}
	}
	var dept *string
	if rec.ReporterDepartment != "" {
		dept = &rec.ReporterDepartment
	}
	return []any{
		rec.ID, rec.Title, rec.Description, rec.Location,
		rec.Priority, rec.Status, rec.Category, rec.Reporter, dept,
		rec.CreatedAt, rec.UpdatedAt, pos, comments, history, ai,
	}, nil
}

// userRow fila de la tabla usuarios.
type userRow struct {
	Email        string
	Nombre       string
	PasswordHash string
	Departamento string
	Rol          string
}

func (r userRow) toEntity() *entity.User {
	return snapshot.UserRecord{
		Name:       r.Nombre,
		Email:      r.Email,
		Password:   r.PasswordHash,
		Department: r.Departamento,
		Role:       r.Rol,
	}.ToUser()
}

func unmarshalJSONB(data []byte, dst any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dst)
}
