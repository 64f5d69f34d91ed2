package entity

import "strings"

// SuperAdminEmail cuenta permanente de súper administrador; su rol no puede cambiar.
const SuperAdminEmail = "info@playabrava.com"

// User representa un miembro del personal del camping.
type User struct {
	Name         string
	Email        string // clave única, sin distinguir mayúsculas
	PasswordHash string // bcrypt hash, nunca plano
	Department   Department
	Role         Role
}

// IsSuperAdmin informa si el usuario es la cuenta protegida.
func (u *User) IsSuperAdmin() bool {
	return u != nil && IsSuperAdminEmail(u.Email)
}

// IsSuperAdminEmail compara sin distinguir mayúsculas ni espacios exteriores.
func IsSuperAdminEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), SuperAdminEmail)
}

// Clone devuelve una copia independiente.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
