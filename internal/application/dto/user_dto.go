package dto

// CreateUserRequest alta de usuario desde el panel de administración (password en texto, se hashea en el registro).
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Department string `json:"department" validate:"required"` // RECEPCION, DIRECCION, SSTT, RESTAURANTE, LIMPIEZA
	Role       string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// UpdateRoleRequest cambio de rol de un usuario.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Department      string `json:"department"`
	DepartmentLabel string `json:"department_label"`
	Role            string `json:"role"`
	SuperAdmin      bool   `json:"super_admin,omitempty"`
}

// UserListResponse listado del registro.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SessionResponse sesión activa guardada en el almacenamiento; User es nil si no hay sesión.
type SessionResponse struct {
	User *UserResponse `json:"user"`
}

// UserResult alta o cambio de rol aplicado; Warning si no se pudo guardar.
type UserResult struct {
	User    UserResponse `json:"user"`
	Warning string       `json:"warning,omitempty"`
}
