package dto

import "time"

// CreateIncidentRequest entrada para reportar una incidencia.
type CreateIncidentRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	Priority       string   `json:"priority" validate:"required"` // BAJA, MEDIA, ALTA, CRITICA (o etiqueta)
	Category       string   `json:"category" validate:"required"`
	AISummary      string   `json:"ai_summary,omitempty"`
	SuggestedSteps []string `json:"suggested_steps,omitempty"`
}

// ChangeStatusRequest nuevo estado de la incidencia.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddCommentRequest texto del comentario.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// IncidentQuery filtros de GET /api/incidents.
type IncidentQuery struct {
	Status string `query:"status"` // ALL (por defecto) o un estado
	Search string `query:"q"`      // subcadena en título, descripción o ubicación
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// Page parámetros de paginación de la consulta.
func (q IncidentQuery) Page() PageRequest {
	p := PageRequest{Limit: q.Limit, Offset: q.Offset}
	p.Normalize()
	return p
}

// CommentDTO comentario de una incidencia.
type CommentDTO struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	IsAIGenerated bool      `json:"is_ai_generated,omitempty"`
}

// StatusHistoryDTO transición de estado registrada.
type StatusHistoryDTO struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      string    `json:"changed_by"`
	Timestamp      time.Time `json:"timestamp"`
}

// AIAnalysisDTO análisis de IA adjunto a la incidencia.
type AIAnalysisDTO struct {
	Summary        string   `json:"summary,omitempty"`
	SuggestedSteps []string `json:"suggested_steps,omitempty"`
}

// IncidentResponse salida de una incidencia.
type IncidentResponse struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Location           string             `json:"location"`
	Priority           string             `json:"priority"`
	PriorityLabel      string             `json:"priority_label"`
	Status             string             `json:"status"`
	StatusLabel        string             `json:"status_label"`
	Category           string             `json:"category"`
	CategoryLabel      string             `json:"category_label"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Reporter           string             `json:"reporter"`
	ReporterDepartment string             `json:"reporter_department,omitempty"`
	Comments           []CommentDTO       `json:"comments"`
	StatusHistory      []StatusHistoryDTO `json:"status_history"`
	AIAnalysis         *AIAnalysisDTO     `json:"ai_analysis,omitempty"`
	Warning            string             `json:"warning,omitempty"` // guardado fallido; el cambio sí se aplicó
}

// IncidentListResponse listado filtrado. Total cuenta todas las coincidencias, no solo la página.
type IncidentListResponse struct {
	Items []IncidentResponse `json:"items"`
	Total int                `json:"total"`
	Page  PageResponse       `json:"page"`
}
