// Package fixtures carga datos de ejemplo (usuarios e incidencias) desde YAML
// para poblar cualquier almacenamiento con campctl seed.
package fixtures

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// File contenido de un fichero de fixtures.
type File struct {
	Users     []User     `yaml:"users"`
	Incidents []Incident `yaml:"incidents"`
}

// User alta de usuario; password en claro, se hashea al registrarlo.
type User struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	Department string `yaml:"department"`
	Role       string `yaml:"role"`
}

// Incident incidencia con su ID fijo. Las fechas pueden ser absolutas
// (created_at) o relativas al momento del seed (created_ago: 2h).
type Incident struct {
	ID                 string      `yaml:"id"`
	Title              string      `yaml:"title"`
	Description        string      `yaml:"description"`
	Location           string      `yaml:"location"`
	Priority           string      `yaml:"priority"`
	Status             string      `yaml:"status"`
	Category           string      `yaml:"category"`
	Reporter           string      `yaml:"reporter"`
	ReporterDepartment string      `yaml:"reporter_department"`
	CreatedAt          *time.Time  `yaml:"created_at"`
	CreatedAgo         string      `yaml:"created_ago"`
	Comments           []Comment   `yaml:"comments"`
	AIAnalysis         *AIAnalysis `yaml:"ai_analysis"`
}

// Comment comentario inicial.
type Comment struct {
	Author string `yaml:"author"`
	Text   string `yaml:"text"`
	Ago    string `yaml:"ago"`
	AI     bool   `yaml:"ai"`
}

// AIAnalysis análisis guardado con la incidencia.
type AIAnalysis struct {
	Summary        string   `yaml:"summary"`
	SuggestedSteps []string `yaml:"suggested_steps"`
}

// Load lee y valida un fichero YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodifica YAML; los campos desconocidos son un error.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("fixtures: yaml: %w", err)
	}
	return &f, nil
}

// UserRequests peticiones de alta para el registro.
func (f *File) UserRequests() []dto.CreateUserRequest {
	out := make([]dto.CreateUserRequest, 0, len(f.Users))
	for _, u := range f.Users {
		out = append(out, dto.CreateUserRequest{
			Name: u.Name, Email: u.Email, Password: u.Password, Department: u.Department, Role: u.Role,
		})
	}
	return out
}

// BuildIncidents convierte las incidencias a entidades, más recientes primero.
// Los enums aceptan código o etiqueta; un valor desconocido es un error.
func (f *File) BuildIncidents(now time.Time) ([]*entity.Incident, error) {
	out := make([]*entity.Incident, 0, len(f.Incidents))
	seen := make(map[string]bool, len(f.Incidents))
	for i, in := range f.Incidents {
		inc, err := in.build(now)
		if err != nil {
			return nil, fmt.Errorf("fixtures: incidencia %d (%s): %w", i+1, in.ID, err)
		}
		if seen[inc.ID] {
			return nil, fmt.Errorf("fixtures: id duplicado %s", inc.ID)
		}
		seen[inc.ID] = true
		out = append(out, inc)
	}
	sortNewestFirst(out)
	return out, nil
}

func (in Incident) build(now time.Time) (*entity.Incident, error) {
	if strings.TrimSpace(in.ID) == "" || strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("id y title son requeridos")
	}
	priority, ok := entity.ParsePriority(in.Priority)
	if !ok {
		return nil, fmt.Errorf("prioridad %q", in.Priority)
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("categoría %q", in.Category)
	}
	status := entity.StatusPendiente
	if in.Status != "" {
		if status, ok = entity.ParseStatus(in.Status); !ok {
			return nil, fmt.Errorf("estado %q", in.Status)
		}
	}
	var dept entity.Department
	if in.ReporterDepartment != "" {
		if dept, ok = entity.ParseDepartment(in.ReporterDepartment); !ok {
			return nil, fmt.Errorf("departamento %q", in.ReporterDepartment)
		}
	}

	created, err := when(now, in.CreatedAt, in.CreatedAgo)
	if err != nil {
		return nil, err
	}
	inc := &entity.Incident{
		ID:                 in.ID,
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		Priority:           priority,
		Status:             status,
		Category:           category,
		CreatedAt:          created,
		UpdatedAt:          created,
		Reporter:           in.Reporter,
		ReporterDepartment: dept,
		Comments:           []entity.Comment{},
		StatusHistory:      []entity.StatusHistoryEntry{},
	}
	for _, c := range in.Comments {
		ts, err := when(now, nil, c.Ago)
		if err != nil {
			return nil, err
		}
		if ts.Before(created) {
			ts = created
		}
		inc.Comments = append(inc.Comments, entity.Comment{
			ID: uuid.NewString(), Author: c.Author, Text: c.Text, Timestamp: ts, IsAIGenerated: c.AI,
		})
		if ts.After(inc.UpdatedAt) {
			inc.UpdatedAt = ts
		}
	}
	if in.AIAnalysis != nil {
		inc.AIAnalysis = &entity.AIAnalysis{
			Summary:        in.AIAnalysis.Summary,
			SuggestedSteps: append([]string(nil), in.AIAnalysis.SuggestedSteps...),
		}
	}
	return inc, nil
}

// when fecha absoluta si existe; si no, now menos la duración ago ("" = now).
func when(now time.Time, at *time.Time, ago string) (time.Time, error) {
	if at != nil {
		return *at, nil
	}
	if ago == "" {
		return now, nil
	}
	d, err := time.ParseDuration(ago)
	if err != nil {
		return time.Time{}, fmt.Errorf("duración %q: %w", ago, err)
	}
	return now.Add(-d), nil
}

// Merge añade a existing las incidencias de seeded cuyo ID no existe aún.
// Con replace el resultado es solo seeded. El orden final es más reciente primero.
func Merge(existing, seeded []*entity.Incident, replace bool) (merged []*entity.Incident, added int) {
	if replace {
		out := append([]*entity.Incident(nil), seeded...)
		sortNewestFirst(out)
		return out, len(seeded)
	}
	ids := make(map[string]bool, len(existing))
	for _, inc := range existing {
		ids[inc.ID] = true
	}
	out := append([]*entity.Incident(nil), existing...)
	for _, inc := range seeded {
		if ids[inc.ID] {
			continue
		}
		out = append(out, inc)
		added++
	}
	sortNewestFirst(out)
	return out, added
}

func sortNewestFirst(list []*entity.Incident) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
