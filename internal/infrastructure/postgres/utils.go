package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/playabrava/gestor-camping/internal/domain"
)

// Códigos SQLSTATE que tienen equivalente en el dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeInvalidText     = "22P02"
)

// pgError envuelve err con op y, si es un error de PostgreSQL conocido, con el
// sentinel del dominio correspondiente.
func pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrEmailAlreadyExists, pgErr.ConstraintName)
	case codeCheckViolation, codeInvalidText:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
