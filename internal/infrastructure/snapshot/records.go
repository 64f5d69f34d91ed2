package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// IncidentRecord forma guardada de una incidencia (claves del almacenamiento local original).
type IncidentRecord struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Location           string            `json:"location"`
	Priority           string            `json:"priority"`
	Status             string            `json:"status"`
	Category           string            `json:"category"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	Reporter           string            `json:"reporter"`
	ReporterDepartment string            `json:"reporterDepartment,omitempty"`
	Comments           []CommentRecord   `json:"comments"`
	StatusHistory      []HistoryRecord   `json:"statusHistory"`
	AIAnalysis         *AIAnalysisRecord `json:"aiAnalysis,omitempty"`
}

type CommentRecord struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	IsAIGenerated bool      `json:"isAiGenerated,omitempty"`
}

type HistoryRecord struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedBy      string    `json:"changedBy"`
	Timestamp      time.Time `json:"timestamp"`
}

type AIAnalysisRecord struct {
	Summary        string   `json:"summary"`
	SuggestedSteps []string `json:"suggestedSteps"`
}

// UserRecord forma guardada de un usuario. Password contiene el hash bcrypt.
type UserRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// ── Incidencias ───────────────────────────────────────────────────────────────

func FromIncident(inc *entity.Incident) IncidentRecord {
	r := IncidentRecord{
		ID:                 inc.ID,
		Title:              inc.Title,
		Description:        inc.Description,
		Location:           inc.Location,
		Priority:           string(inc.Priority),
		Status:             string(inc.Status),
		Category:           string(inc.Category),
		CreatedAt:          inc.CreatedAt,
		UpdatedAt:          inc.UpdatedAt,
		Reporter:           inc.Reporter,
		ReporterDepartment: string(inc.ReporterDepartment),
		Comments:           FromComments(inc.Comments),
		StatusHistory:      FromHistory(inc.StatusHistory),
	}
	if inc.AIAnalysis != nil {
		r.AIAnalysis = &AIAnalysisRecord{
			Summary:        inc.AIAnalysis.Summary,
			SuggestedSteps: append([]string{}, inc.AIAnalysis.SuggestedSteps...),
		}
	}
	return r
}

// ToIncident traducción total: los enums desconocidos toman su valor por defecto.
func (r IncidentRecord) ToIncident() *entity.Incident {
	inc := &entity.Incident{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		Location:           r.Location,
		Priority:           Priority(r.Priority),
		Status:             Status(r.Status),
		Category:           Category(r.Category),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		Reporter:           r.Reporter,
		ReporterDepartment: OptionalDepartment(r.ReporterDepartment),
		Comments:           ToComments(r.Comments),
		StatusHistory:      ToHistory(r.StatusHistory),
	}
	if inc.UpdatedAt.Before(inc.CreatedAt) {
		inc.UpdatedAt = inc.CreatedAt
	}
	if r.AIAnalysis != nil {
		inc.AIAnalysis = &entity.AIAnalysis{
			Summary:        r.AIAnalysis.Summary,
			SuggestedSteps: append([]string{}, r.AIAnalysis.SuggestedSteps...),
		}
	}
	return inc
}

func FromComments(in []entity.Comment) []CommentRecord {
	out := make([]CommentRecord, 0, len(in))
	for _, c := range in {
		out = append(out, CommentRecord{
			ID: c.ID, Author: c.Author, Text: c.Text, Timestamp: c.Timestamp, IsAIGenerated: c.IsAIGenerated,
		})
	}
	return out
}

func ToComments(in []CommentRecord) []entity.Comment {
	out := make([]entity.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, entity.Comment{
			ID: c.ID, Author: c.Author, Text: c.Text, Timestamp: c.Timestamp, IsAIGenerated: c.IsAIGenerated,
		})
	}
	return out
}

func FromHistory(in []entity.StatusHistoryEntry) []HistoryRecord {
	out := make([]HistoryRecord, 0, len(in))
	for _, h := range in {
		out = append(out, HistoryRecord{
			ID:             h.ID,
			PreviousStatus: string(h.PreviousStatus),
			NewStatus:      string(h.NewStatus),
			ChangedBy:      h.ChangedBy,
			Timestamp:      h.Timestamp,
		})
	}
	return out
}

func ToHistory(in []HistoryRecord) []entity.StatusHistoryEntry {
	out := make([]entity.StatusHistoryEntry, 0, len(in))
	for _, h := range in {
		out = append(out, entity.StatusHistoryEntry{
			ID:             h.ID,
			PreviousStatus: Status(h.PreviousStatus),
			NewStatus:      Status(h.NewStatus),
			ChangedBy:      h.ChangedBy,
			Timestamp:      h.Timestamp,
		})
	}
	return out
}

// EncodeIncidents JSON de la instantánea completa.
func EncodeIncidents(list []*entity.Incident) ([]byte, error) {
	records := make([]IncidentRecord, 0, len(list))
	for _, inc := range list {
		records = append(records, FromIncident(inc))
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("snapshot: codificar incidencias: %w", err)
	}
	return b, nil
}

// DecodeIncidents vacío o nil = sin incidencias.
func DecodeIncidents(data []byte) ([]*entity.Incident, error) {
	if len(data) == 0 {
		return []*entity.Incident{}, nil
	}
	var records []IncidentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("snapshot: decodificar incidencias: %w", err)
	}
	out := make([]*entity.Incident, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToIncident())
	}
	return out, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func FromUser(u *entity.User) UserRecord {
	return UserRecord{
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.PasswordHash,
		Department: string(u.Department),
		Role:       string(u.Role),
	}
}

func (r UserRecord) ToUser() *entity.User {
	return &entity.User{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Department:   Department(r.Department),
		Role:         Role(r.Role),
	}
}

func EncodeUsers(list []*entity.User) ([]byte, error) {
	records := make([]UserRecord, 0, len(list))
	for _, u := range list {
		records = append(records, FromUser(u))
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("snapshot: codificar usuarios: %w", err)
	}
	return b, nil
}

func DecodeUsers(data []byte) ([]*entity.User, error) {
	if len(data) == 0 {
		return []*entity.User{}, nil
	}
	var records []UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("snapshot: decodificar usuarios: %w", err)
	}
	out := make([]*entity.User, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToUser())
	}
	return out, nil
}

// EncodeUser nil codifica "null" (sesión cerrada).
func EncodeUser(u *entity.User) ([]byte, error) {
	if u == nil {
		return []byte("null"), nil
	}
	b, err := json.Marshal(FromUser(u))
	if err != nil {
		return nil, fmt.Errorf("snapshot: codificar usuario: %w", err)
	}
	return b, nil
}

// DecodeUser "null" o vacío = sin sesión.
func DecodeUser(data []byte) (*entity.User, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var r UserRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("snapshot: decodificar usuario: %w", err)
	}
	return r.ToUser(), nil
}
