package repository

import (
	"context"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// IncidentRepository guarda y recupera la instantánea completa de incidencias (DIP).
// LoadIncidents devuelve una lista vacía (no error) si no hay nada guardado.
type IncidentRepository interface {
	LoadIncidents(ctx context.Context) ([]*entity.Incident, error)
	SaveIncidents(ctx context.Context, incidents []*entity.Incident) error
}
