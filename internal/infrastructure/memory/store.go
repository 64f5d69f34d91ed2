// Package memory implementa el PersistenceAdapter en memoria del proceso.
// Sirve para desarrollo (STORAGE_DRIVER=memory) y para los tests.
package memory

import (
	"context"
	"sync"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

var _ repository.PersistenceAdapter = (*Store)(nil)

// Store guarda copias profundas: lo que devuelve nunca comparte memoria con el llamador.
type Store struct {
	mu        sync.Mutex
	incidents []*entity.Incident
	users     []*entity.User
	session   *entity.User

	// FailSaves, si no es nil, se devuelve en cada Save*. Simula un almacenamiento caído.
	FailSaves error
	saves     int
}

// NewStore construye un almacén vacío.
func NewStore() *Store { return &Store{} }

func (s *Store) LoadIncidents(_ context.Context) ([]*entity.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		out = append(out, inc.Clone())
	}
	return out, nil
}

func (s *Store) SaveIncidents(_ context.Context, incidents []*entity.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.saves++
	s.incidents = make([]*entity.Incident, 0, len(incidents))
	for _, inc := range incidents {
		s.incidents = append(s.incidents, inc.Clone())
	}
	return nil
}

func (s *Store) LoadUserRegistry(_ context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (s *Store) SaveUserRegistry(_ context.Context, users []*entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.saves++
	s.users = make([]*entity.User, 0, len(users))
	for _, u := range users {
		s.users = append(s.users, u.Clone())
	}
	return nil
}

func (s *Store) LoadUser(_ context.Context) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone(), nil
}

func (s *Store) SaveUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.saves++
	s.session = user.Clone()
	return nil
}

// SetFailSaves activa o desactiva (nil) el fallo simulado.
func (s *Store) SetFailSaves(err error) {
	s.mu.Lock()
	s.FailSaves = err
	s.mu.Unlock()
}

// Saves número de guardados completados.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) Close() error { return nil }
