package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

var _ repository.UserRegistryRepository = (*UserRepo)(nil)

// UserRepo registro de usuarios sobre la tabla usuarios.
type UserRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool, tx: NewTxRunner(pool)}
}

// LoadUserRegistry devuelve el registro en orden de alta.
func (r *UserRepo) LoadUserRegistry(ctx context.Context) ([]*entity.User, error) {
	const query = `
		SELECT email, nombre, password_hash, departamento, rol
		FROM usuarios
		ORDER BY posicion, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load usuarios: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		var row userRow
		if err := rows.Scan(&row.Email, &row.Nombre, &row.PasswordHash, &row.Departamento, &row.Rol); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, row.toEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load usuarios: %w", err)
	}
	return out, nil
}

// SaveUserRegistry reemplaza el registro completo en una transacción.
func (r *UserRepo) SaveUserRegistry(ctx context.Context, users []*entity.User) error {
	const upsert = `
		INSERT INTO usuarios (email, nombre, password_hash, departamento, rol, posicion)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
		    nombre = EXCLUDED.nombre, password_hash = EXCLUDED.password_hash,
		    departamento = EXCLUDED.departamento, rol = EXCLUDED.rol, posicion = EXCLUDED.posicion`

	err := r.tx.Run(ctx, func(tx pgx.Tx) error {
		emails := make([]string, 0, len(users))
		batch := &pgx.Batch{}
		for i, u := range users {
			batch.Queue(upsert, u.Email, u.Name, u.PasswordHash, string(u.Department), string(u.Role), i)
			emails = append(emails, u.Email)
		}
		batch.Queue(`DELETE FROM usuarios WHERE NOT (email = ANY($1))`, emails)
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return pgError("save usuarios", err)
	}
	return nil
}
