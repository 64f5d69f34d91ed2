package dto

import "github.com/shopspring/decimal"

// CountsDTO tarjetas del tablero principal.
type CountsDTO struct {
	Pending      int `json:"pending"`
	HighPriority int `json:"high_priority"` // ALTA + CRITICA
	Resolved     int `json:"resolved"`
	Total        int `json:"total"`
}

// CategoryStatDTO incidencias por categoría con su porcentaje sobre el total.
type CategoryStatDTO struct {
	Category   string          `json:"category"`
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"` // count / total * 100, 0 si no hay incidencias
}

// EnumCountDTO conteo por valor de un enum (prioridad o estado), en orden fijo.
type EnumCountDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatsSummaryDTO respuesta de GET /api/stats/summary.
type StatsSummaryDTO struct {
	Counts     CountsDTO         `json:"counts"`
	ByCategory []CategoryStatDTO `json:"by_category"`
	ByPriority []EnumCountDTO    `json:"by_priority"`
	ByStatus   []EnumCountDTO    `json:"by_status"`
	DateLabel  string            `json:"date_label"` // ej: "octubre de 2026"
}
