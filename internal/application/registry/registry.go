// Package registry mantiene el registro de usuarios del personal: alta, login y
// cambios de rol. Cada mutación aceptada guarda el registro completo.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
)

// Options ajustes del registro.
type Options struct {
	// SuperAdminPassword se usa para crear la cuenta protegida si no existe.
	// Vacío = no se crea (se registra un aviso).
	SuperAdminPassword string
	// HashCost coste bcrypt; 0 = bcrypt.DefaultCost.
	HashCost int
}

// Registry registro de usuarios en memoria respaldado por un UserRegistryRepository.
type Registry struct {
	mu     sync.RWMutex
	users  []*entity.User
	repo   repository.UserRegistryRepository
	policy access.Checker
	opts   Options
	log    zerolog.Logger
}

// New construye el registro vacío. Llamar a Load antes de servir peticiones.
func New(repo repository.UserRegistryRepository, policy access.Checker, log zerolog.Logger, opts Options) *Registry {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &Registry{
		repo:   repo,
		policy: policy,
		opts:   opts,
		log:    log.With().Str("component", "registry").Logger(),
	}
}

// Load lee el registro guardado, fuerza el rol ADMIN de la cuenta protegida y
// la crea si falta. Un fallo de lectura se devuelve: arrancar vacío podría
// sobrescribir el registro remoto en el siguiente guardado.
func (r *Registry) Load(ctx context.Context) error {
	users, err := r.repo.LoadUserRegistry(ctx)
	if err != nil {
		return fmt.Errorf("registry: cargar usuarios: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = r.users[:0]
	dirty := false
	hasSuperAdmin := false
	for _, u := range users {
		if u == nil || r.indexOf(u.Email) >= 0 {
			continue
		}
		if u.IsSuperAdmin() {
			hasSuperAdmin = true
			if u.Role != entity.RoleAdmin {
				u.Role = entity.RoleAdmin
				dirty = true
			}
		}
		r.users = append(r.users, u.Clone())
	}

	if !hasSuperAdmin {
		if r.opts.SuperAdminPassword == "" {
			r.log.Warn().Str("email", entity.SuperAdminEmail).Msg("cuenta de súper administrador ausente y SUPERADMIN_PASSWORD vacío")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(r.opts.SuperAdminPassword), r.opts.HashCost)
			if err != nil {
				return fmt.Errorf("registry: hash súper administrador: %w", err)
			}
			r.users = append(r.users, &entity.User{
				Name:         "Administración Playa Brava",
				Email:        entity.SuperAdminEmail,
				PasswordHash: string(hash),
				Department:   entity.DepartmentDireccion,
				Role:         entity.RoleAdmin,
			})
			dirty = true
			r.log.Info().Str("email", entity.SuperAdminEmail).Msg("cuenta de súper administrador creada")
		}
	}

	if dirty {
		if err := r.persistLocked(ctx); err != nil {
			r.log.Warn().Err(err).Msg("registro cargado pero no guardado")
		}
	}
	r.log.Info().Int("users", len(r.users)).Msg("registro de usuarios cargado")
	return nil
}

// Register da de alta un usuario. ErrEmailAlreadyExists si el email ya existe
// (sin distinguir mayúsculas); ErrInvalidInput si falta un campo o el
// departamento/rol no existe.
func (r *Registry) Register(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	user, password, err := newUser(in)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(user.Email) >= 0 {
		return nil, domain.ErrEmailAlreadyExists
	}
	if user.IsSuperAdmin() {
		user.Role = entity.RoleAdmin
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.opts.HashCost)
	if err != nil {
		return nil, fmt.Errorf("registry: hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	r.users = append(r.users, user)

	r.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("usuario registrado")
	return user.Clone(), r.persistLocked(ctx)
}

// CreateUser alta desde el panel: solo roles con permiso de gestión de usuarios.
func (r *Registry) CreateUser(ctx context.Context, actorRole entity.Role, in dto.CreateUserRequest) (*entity.User, error) {
	if !r.policy.CanManageUsers(actorRole) {
		return nil, domain.ErrUnauthorized
	}
	return r.Register(ctx, in)
}

// Authenticate devuelve el usuario si email (sin distinguir mayúsculas) y
// password coinciden. No distingue "email desconocido" de "password incorrecto".
func (r *Registry) Authenticate(email, password string) (*entity.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(email)
	if i < 0 || password == "" {
		return nil, false
	}
	u := r.users[i]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}
	return u.Clone(), true
}

// SetRole cambia el rol de targetEmail.
//   - ErrUnauthorized      si actorRole no puede gestionar usuarios (sin cambios).
//   - ErrProtectedAccount  si el destino es la cuenta de súper administrador (sin cambios).
//   - ErrUserNotFound      si el email no está registrado.
func (r *Registry) SetRole(ctx context.Context, actorRole entity.Role, targetEmail string, newRole entity.Role) (*entity.User, error) {
	if !r.policy.CanManageUsers(actorRole) {
		return nil, domain.ErrUnauthorized
	}
	if entity.IsSuperAdminEmail(targetEmail) {
		return nil, domain.ErrProtectedAccount
	}
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, newRole)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(targetEmail)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i]
	if u.Role == newRole {
		return u.Clone(), nil
	}
	u.Role = newRole

	r.log.Info().Str("email", u.Email).Str("role", string(newRole)).Msg("rol actualizado")
	return u.Clone(), r.persistLocked(ctx)
}

// Lookup busca un usuario por email.
func (r *Registry) Lookup(email string) (*entity.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(email)
	if i < 0 {
		return nil, false
	}
	return r.users[i].Clone(), true
}

// List devuelve el registro en orden de alta; requiere permiso de gestión.
func (r *Registry) List(actorRole entity.Role) ([]*entity.User, error) {
	if !r.policy.CanManageUsers(actorRole) {
		return nil, domain.ErrUnauthorized
	}
	return r.Snapshot(), nil
}

// Snapshot copia del registro completo, sin control de acceso (uso interno y CLI).
func (r *Registry) Snapshot() []*entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out
}

// indexOf requiere r.mu tomado.
func (r *Registry) indexOf(email string) int {
	email = strings.TrimSpace(email)
	for i, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}

// persistLocked guarda el registro completo; requiere r.mu en escritura.
// El fallo no revierte la mutación: se devuelve como *domain.PersistWarning.
func (r *Registry) persistLocked(ctx context.Context) error {
	snapshot := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		snapshot = append(snapshot, u.Clone())
	}
	if err := r.repo.SaveUserRegistry(ctx, snapshot); err != nil {
		r.log.Warn().Err(err).Msg("no se pudo guardar el registro de usuarios")
		return &domain.PersistWarning{Err: err}
	}
	return nil
}

func newUser(in dto.CreateUserRequest) (*entity.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email y password son requeridos", domain.ErrInvalidInput)
	}
	dept, ok := entity.ParseDepartment(in.Department)
	if !ok {
		return nil, "", fmt.Errorf("%w: departamento %q", domain.ErrInvalidInput, in.Department)
	}
	role := entity.RoleUser
	if in.Role != "" {
		if role, ok = entity.ParseRole(in.Role); !ok {
			return nil, "", fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
		}
	}
	return &entity.User{Name: name, Email: email, Department: dept, Role: role}, in.Password, nil
}
