// Package incidents es el único dueño de la colección de incidencias: crea,
// lista, filtra y aplica cambios de estado y comentarios. Es el único que
// escribe historial de estados y comentarios.
package incidents

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

// AIAuthor autor de los comentarios generados por el asistente.
const AIAuthor = "Asistente IA"

// NewIncident datos de una incidencia nueva; los enums ya validados o por validar.
type NewIncident struct {
	Title       string
	Description string
	Location    string
	Priority    entity.Priority
	Category    entity.Category
	AIAnalysis  *entity.AIAnalysis
}

// Store colección de incidencias en memoria, orden canónico: más reciente primero.
//
// Cada mutación aceptada incrementa la versión y guarda la instantánea completa.
// Si el guardado falla la mutación se conserva y se devuelve *domain.PersistWarning.
type Store struct {
	mu      sync.RWMutex
	items   []*entity.Incident
	seq     int
	version uint64

	saveMu       sync.Mutex
	savedVersion uint64

	repo   repository.IncidentRepository
	policy access.Checker
	log    zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewStore construye un almacén vacío. Llamar a Load para recuperar lo guardado.
func NewStore(repo repository.IncidentRepository, policy access.Checker, log zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		policy: policy,
		log:    log.With().Str("component", "incidents").Logger(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Load reemplaza el contenido por lo guardado en el repositorio.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.repo.LoadIncidents(ctx)
	if err != nil {
		return fmt.Errorf("incidents: cargar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	s.seq = 0
	seen := make(map[string]bool, len(loaded))
	for _, inc := range loaded {
		if inc == nil || inc.ID == "" || seen[inc.ID] {
			continue
		}
		seen[inc.ID] = true
		s.items = append(s.items, inc.Clone())
		if n := sequenceOf(inc.ID); n > s.seq {
			s.seq = n
		}
	}
	s.version++
	s.savedVersion = s.version
	s.log.Info().Int("incidents", len(s.items)).Msg("incidencias cargadas")
	return nil
}

// Create registra una incidencia PENDIENTE sin comentarios ni historial y la
// antepone a la colección. ErrInvalidInput si falta un campo obligatorio.
func (s *Store) Create(ctx context.Context, in NewIncident, reporter string, reporterDept entity.Department) (*entity.Incident, error) {
	if err := validateNew(in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reporter) == "" {
		return nil, fmt.Errorf("%w: reporter es requerido", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	now := s.now()
	inc := &entity.Incident{
		ID:                 s.nextIDLocked(now),
		Title:              strings.TrimSpace(in.Title),
		Description:        strings.TrimSpace(in.Description),
		Location:           strings.TrimSpace(in.Location),
		Priority:           in.Priority,
		Status:             entity.StatusPendiente,
		Category:           in.Category,
		CreatedAt:          now,
		UpdatedAt:          now,
		Reporter:           reporter,
		ReporterDepartment: reporterDept,
		Comments:           []entity.Comment{},
		StatusHistory:      []entity.StatusHistoryEntry{},
	}
	if in.AIAnalysis != nil {
		a := *in.AIAnalysis
		a.SuggestedSteps = append([]string(nil), in.AIAnalysis.SuggestedSteps...)
		inc.AIAnalysis = &a
	}
	s.items = append([]*entity.Incident{inc}, s.items...)
	out := inc.Clone()
	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	s.log.Info().Str("id", out.ID).Str("reporter", reporter).Str("priority", string(out.Priority)).Msg("incidencia creada")
	return out, s.persist(ctx, version, snapshot)
}

// ChangeStatus aplica la transición si el actor puede cambiar estados.
//   - ErrUnauthorized: rol sin permiso, sin cambios.
//   - ErrNotFound:     id desconocido.
//   - mismo estado:    no-op, sin entrada de historial ni guardado.
//
// Cualquier estado puede seguir a cualquier otro.
func (s *Store) ChangeStatus(ctx context.Context, id string, newStatus entity.Status, actor *entity.User) (*entity.Incident, error) {
	if actor == nil || !s.policy.CanChangeStatus(actor.Role) {
		return nil, domain.ErrUnauthorized
	}
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, newStatus)
	}

	s.mu.Lock()
	inc := s.findLocked(id)
	if inc == nil {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if inc.Status == newStatus {
		out := inc.Clone()
		s.mu.Unlock()
		return out, nil
	}
	ts := s.touchLocked(inc)
	previous := inc.Status
	inc.StatusHistory = append(inc.StatusHistory, entity.StatusHistoryEntry{
		ID:             s.newID(),
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ChangedBy:      actor.Name,
		Timestamp:      ts,
	})
	inc.Status = newStatus
	out := inc.Clone()
	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	s.log.Info().Str("id", id).Str("from", string(previous)).Str("to", string(newStatus)).
		Str("by", actor.Name).Msg("estado actualizado")
	return out, s.persist(ctx, version, snapshot)
}

// AddComment añade un comentario de author. ErrInvalidInput si el texto está vacío
// o solo tiene espacios; ErrNotFound si el id no existe.
func (s *Store) AddComment(ctx context.Context, id, text, author string) (*entity.Incident, error) {
	return s.addComment(ctx, id, text, author, false)
}

// AddAIComment guarda como comentario un texto generado por el asistente.
func (s *Store) AddAIComment(ctx context.Context, id, text string) (*entity.Incident, error) {
	return s.addComment(ctx, id, text, AIAuthor, true)
}

func (s *Store) addComment(ctx context.Context, id, text, author string, ai bool) (*entity.Incident, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: el comentario está vacío", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	inc := s.findLocked(id)
	if inc == nil {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	ts := s.touchLocked(inc)
	inc.Comments = append(inc.Comments, entity.Comment{
		ID:            s.newID(),
		Author:        author,
		Text:          text,
		Timestamp:     ts,
		IsAIGenerated: ai,
	})
	out := inc.Clone()
	version, snapshot := s.commitLocked()
	s.mu.Unlock()

	s.log.Info().Str("id", id).Str("author", author).Bool("ai", ai).Msg("comentario añadido")
	return out, s.persist(ctx, version, snapshot)
}

// Get devuelve una copia de la incidencia o ErrNotFound.
func (s *Store) Get(id string) (*entity.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inc := s.findLocked(id)
	if inc == nil {
		return nil, domain.ErrNotFound
	}
	return inc.Clone(), nil
}

// List devuelve la instantánea completa en orden del almacén.
func (s *Store) List() []*entity.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

// Filter aplica Query sobre la instantánea actual.
func (s *Store) Filter(q Query) []*entity.Incident {
	return Filter(s.List(), q)
}

// Version número de versión de la instantánea; cambia con cada mutación aplicada.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) findLocked(id string) *entity.Incident {
	for _, inc := range s.items {
		if inc.ID == id {
			return inc
		}
	}
	return nil
}

// touchLocked actualiza UpdatedAt sin retroceder nunca y devuelve la marca usada.
func (s *Store) touchLocked(inc *entity.Incident) time.Time {
	ts := s.now()
	if ts.Before(inc.UpdatedAt) {
		ts = inc.UpdatedAt
	}
	inc.UpdatedAt = ts
	return ts
}

// commitLocked incrementa la versión y copia la instantánea a guardar.
func (s *Store) commitLocked() (uint64, []*entity.Incident) {
	s.version++
	return s.version, cloneAll(s.items)
}

// persist guarda la instantánea salvo que ya se haya guardado una más reciente.
func (s *Store) persist(ctx context.Context, version uint64, snapshot []*entity.Incident) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if version <= s.savedVersion {
		return nil
	}
	if err := s.repo.SaveIncidents(ctx, snapshot); err != nil {
		s.log.Warn().Err(err).Uint64("version", version).Msg("no se pudieron guardar las incidencias")
		return &domain.PersistWarning{Err: err}
	}
	s.savedVersion = version
	return nil
}

// nextIDLocked genera INC-<año>-<NNN>; la secuencia nunca se reutiliza.
func (s *Store) nextIDLocked(now time.Time) string {
	for {
		s.seq++
		id := fmt.Sprintf("INC-%d-%03d", now.Year(), s.seq)
		if s.findLocked(id) == nil {
			return id
		}
	}
}

// sequenceOf extrae NNN de "INC-YYYY-NNN"; 0 si el id tiene otro formato.
func sequenceOf(id string) int {
	i := strings.LastIndexByte(id, '-')
	if !strings.HasPrefix(id, "INC-") || i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func validateNew(in NewIncident) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requerido", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("%w: prioridad %q", domain.ErrInvalidInput, in.Priority)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	return nil
}

func cloneAll(items []*entity.Incident) []*entity.Incident {
	out := make([]*entity.Incident, 0, len(items))
	for _, inc := range items {
		out = append(out, inc.Clone())
	}
	return out
}
