package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/internal/infrastructure/snapshot"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo usuario de la sesión actual: una única fila en la tabla sesion.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de sesión.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) LoadUser(ctx context.Context) (*entity.User, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT usuario FROM sesion WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sesion: %w", err)
	}
	return snapshot.DecodeUser(data)
}

// SaveUser con nil deja la sesión vacía (usuario NULL).
func (r *SessionRepo) SaveUser(ctx context.Context, user *entity.User) error {
	var data []byte
	if user != nil {
		b, err := snapshot.EncodeUser(user)
		if err != nil {
			return err
		}
		data = b
	}
	const query = `
		INSERT INTO sesion (id, usuario, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET usuario = EXCLUDED.usuario, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, data); err != nil {
		return fmt.Errorf("save sesion: %w", err)
	}
	return nil
}
