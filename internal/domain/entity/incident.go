package entity

import "time"

// Incident incidencia de mantenimiento reportada por el personal.
//
// Reporter y ReporterDepartment son una copia tomada al crearla, no una
// referencia viva al usuario.
type Incident struct {
	ID                 string
	Title              string
	Description        string
	Location           string
	Priority           Priority
	Status             Status
	Category           Category
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Reporter           string
	ReporterDepartment Department // vacío si se desconoce
	Comments           []Comment
	StatusHistory      []StatusHistoryEntry
	AIAnalysis         *AIAnalysis
}

// Comment comentario inmutable sobre una incidencia.
type Comment struct {
	ID            string
	Author        string
	Text          string
	Timestamp     time.Time
	IsAIGenerated bool
}

// StatusHistoryEntry registro de auditoría de una transición de estado aplicada.
type StatusHistoryEntry struct {
	ID             string
	PreviousStatus Status
	NewStatus      Status
	ChangedBy      string
	Timestamp      time.Time
}

// AIAnalysis sugerencias de IA guardadas al crear la incidencia.
type AIAnalysis struct {
	Summary        string
	SuggestedSteps []string
}

// Clone copia en profundidad la incidencia (comentarios, historial y análisis).
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	c := *i
	if i.Comments != nil {
		c.Comments = append([]Comment(nil), i.Comments...)
	}
	if i.StatusHistory != nil {
		c.StatusHistory = append([]StatusHistoryEntry(nil), i.StatusHistory...)
	}
	if i.AIAnalysis != nil {
		a := *i.AIAnalysis
		a.SuggestedSteps = append([]string(nil), i.AIAnalysis.SuggestedSteps...)
		c.AIAnalysis = &a
	}
	return &c
}
