package repository

import (
	"context"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// UserRegistryRepository define el puerto de persistencia del registro de usuarios.
// Siempre se guarda el registro completo.
type UserRegistryRepository interface {
	LoadUserRegistry(ctx context.Context) ([]*entity.User, error)
	SaveUserRegistry(ctx context.Context, users []*entity.User) error
}

// SessionRepository guarda el usuario de la sesión activa; nil significa sesión cerrada.
type SessionRepository interface {
	LoadUser(ctx context.Context) (*entity.User, error)
	SaveUser(ctx context.Context, user *entity.User) error
}
