// Package access decide qué rol puede ejecutar cada mutación.
//
// Las reglas viven en un modelo casbin embebido; la política es fija y pura:
// el mismo rol produce siempre la misma respuesta.
package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// Objetos y acciones que se consultan al enforcer.
const (
	ObjIncident = "incident"
	ObjUser     = "user"

	ActChangeStatus = "change_status"
	ActManage       = "manage"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// defaultPolicy solo ADMIN cambia estados y gestiona usuarios.
const defaultPolicy = `
p, ADMIN, incident, change_status
p, ADMIN, user, manage
`

// Checker es lo que consumen el almacén de incidencias y el registro de usuarios.
type Checker interface {
	CanChangeStatus(role entity.Role) bool
	CanManageUsers(role entity.Role) bool
}

var _ Checker = (*Policy)(nil)

// Policy implementación de Checker sobre casbin.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy construye la política por defecto.
func NewPolicy() (*Policy, error) {
	return NewPolicyFromCSV(defaultPolicy)
}

// NewPolicyFromCSV construye la política a partir de líneas "p, ROL, objeto, acción".
func NewPolicyFromCSV(lines string) (*Policy, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("access: modelo: %w", err)
	}
	e, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(lines))
	if err != nil {
		return nil, fmt.Errorf("access: enforcer: %w", err)
	}
	return &Policy{enforcer: e}, nil
}

// MustNewPolicy igual que NewPolicy pero hace panic; el modelo embebido es constante.
func MustNewPolicy() *Policy {
	p, err := NewPolicy()
	if err != nil {
		panic(err)
	}
	return p
}

// CanChangeStatus verdadero solo para ADMIN.
func (p *Policy) CanChangeStatus(role entity.Role) bool {
	return p.allowed(role, ObjIncident, ActChangeStatus)
}

// CanManageUsers verdadero solo para ADMIN.
func (p *Policy) CanManageUsers(role entity.Role) bool {
	return p.allowed(role, ObjUser, ActManage)
}

// allowed cualquier error del enforcer cuenta como denegación.
func (p *Policy) allowed(role entity.Role, obj, act string) bool {
	if p == nil || p.enforcer == nil || !role.Valid() {
		return false
	}
	ok, err := p.enforcer.Enforce(string(role), obj, act)
	return err == nil && ok
}
