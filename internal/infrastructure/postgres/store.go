package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

var _ repository.PersistenceAdapter = (*Store)(nil)

// Store adaptador remoto completo: incidencias, usuarios y sesión sobre un mismo pool.
type Store struct {
	*IncidentRepo
	*UserRepo
	*SessionRepo
	pool *pgxpool.Pool
}

// NewStore el Store es dueño del pool: Close lo cierra.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		IncidentRepo: NewIncidentRepository(pool),
		UserRepo:     NewUserRepository(pool),
		SessionRepo:  NewSessionRepository(pool),
		pool:         pool,
	}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Pool para repositorios de solo lectura (analítica) sobre la misma conexión.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }
