package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, logout y sesión actual. La sesión (usuario conectado) se
// guarda en el almacenamiento igual que lo hacía el navegador.
type AuthUseCase struct {
	registry *registry.Registry
	session  repository.SessionRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(reg *registry.Registry, session repository.SessionRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{registry: reg, session: session, jwtCfg: jwtCfg, log: log.With().Str("component", "auth").Logger()}
}

// Login comprueba credenciales y devuelve token + usuario. Cualquier fallo de
// credenciales es ErrUnauthorized, sin distinguir email de contraseña.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.registry.Authenticate(in.Email, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, user.Name, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	sess := user.Clone()
	sess.PasswordHash = ""
	if err := uc.session.SaveUser(ctx, sess); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo guardar la sesión")
	}
	uc.log.Info().Str("email", user.Email).Msg("login")
	return &dto.LoginResponse{Token: token, User: dto.UserFromEntity(user)}, nil
}

// Logout borra la sesión guardada.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if err := uc.session.SaveUser(ctx, nil); err != nil {
		return &domain.PersistWarning{Err: err}
	}
	return nil
}

// Session usuario de la sesión guardada, con los datos vigentes del registro.
func (uc *AuthUseCase) Session(ctx context.Context) (*dto.SessionResponse, error) {
	saved, err := uc.session.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: cargar sesión: %w", err)
	}
	if saved == nil {
		return &dto.SessionResponse{}, nil
	}
	if current, ok := uc.registry.Lookup(saved.Email); ok {
		saved = current
	}
	u := dto.UserFromEntity(saved)
	return &dto.SessionResponse{User: &u}, nil
}
