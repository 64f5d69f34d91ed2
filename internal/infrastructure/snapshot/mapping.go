// Package snapshot codifica las instantáneas de incidencias y usuarios para los
// adaptadores de persistencia (JSON en Redis, JSONB en Postgres) y traduce los
// valores guardados a enums del dominio.
package snapshot

import "github.com/playabrava/gestor-camping/internal/domain/entity"

// Valores usados cuando el dato guardado no corresponde a ningún enum.
const (
	DefaultStatus     = entity.StatusPendiente
	DefaultPriority   = entity.PriorityMedia
	DefaultCategory   = entity.CategoryParcelas
	DefaultDepartment = entity.DepartmentRecepcion
	DefaultRole       = entity.RoleUser
)

// Status acepta código o etiqueta ("EN_PROCESO", "En Proceso", "en proceso").
func Status(raw string) entity.Status {
	if v, ok := entity.ParseStatus(raw); ok {
		return v
	}
	return DefaultStatus
}

func Priority(raw string) entity.Priority {
	if v, ok := entity.ParsePriority(raw); ok {
		return v
	}
	return DefaultPriority
}

func Category(raw string) entity.Category {
	if v, ok := entity.ParseCategory(raw); ok {
		return v
	}
	return DefaultCategory
}

func Department(raw string) entity.Department {
	if v, ok := entity.ParseDepartment(raw); ok {
		return v
	}
	return DefaultDepartment
}

// OptionalDepartment "" se conserva vacío (incidencias sin departamento del informante).
func OptionalDepartment(raw string) entity.Department {
	if raw == "" {
		return ""
	}
	return Department(raw)
}

func Role(raw string) entity.Role {
	if v, ok := entity.ParseRole(raw); ok {
		return v
	}
	return DefaultRole
}
