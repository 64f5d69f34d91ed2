package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Priority prioridad de una incidencia.
type Priority string

const (
	PriorityBaja    Priority = "BAJA"
	PriorityMedia   Priority = "MEDIA"
	PriorityAlta    Priority = "ALTA"
	PriorityCritica Priority = "CRITICA"
)

// Priorities en orden fijo (de menor a mayor urgencia).
var Priorities = []Priority{PriorityBaja, PriorityMedia, PriorityAlta, PriorityCritica}

var priorityLabels = map[Priority]string{
	PriorityBaja:    "Baja",
	PriorityMedia:   "Media",
	PriorityAlta:    "Alta",
	PriorityCritica: "Crítica",
}

// Label devuelve la etiqueta en español.
func (p Priority) Label() string { return labelOr(priorityLabels, p) }

// Valid informa si p es un valor del enum.
func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// IsHigh es verdadero para ALTA y CRITICA.
func (p Priority) IsHigh() bool { return p == PriorityAlta || p == PriorityCritica }

// ParsePriority acepta el código (ALTA) o la etiqueta (Alta, "crítica").
func ParsePriority(raw string) (Priority, bool) { return lookup(Priorities, priorityLabels, raw) }

// Status estado del ciclo de vida de una incidencia.
//
// No hay restricciones de transición: cualquier estado es alcanzable desde cualquier otro.
type Status string

const (
	StatusPendiente  Status = "PENDIENTE"
	StatusEnProceso  Status = "EN_PROCESO"
	StatusFinalizada Status = "FINALIZADA"
)

// Statuses en orden del ciclo de vida.
var Statuses = []Status{StatusPendiente, StatusEnProceso, StatusFinalizada}

var statusLabels = map[Status]string{
	StatusPendiente:  "Pendiente",
	StatusEnProceso:  "En Proceso",
	StatusFinalizada: "Finalizada",
}

func (s Status) Label() string { return labelOr(statusLabels, s) }

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus acepta el código (EN_PROCESO) o la etiqueta (En Proceso).
func ParseStatus(raw string) (Status, bool) { return lookup(Statuses, statusLabels, raw) }

// Category área del camping afectada.
type Category string

const (
	CategoryParcelas   Category = "PARCELAS"
	CategoryBungalows  Category = "BUNGALOWS"
	CategoryGlamping   Category = "GLAMPING"
	CategoryRestaurant Category = "RESTAURANT"
	CategoryCocina     Category = "COCINA"
	CategoryTTOO       Category = "TTOO"
	CategorySanitarios Category = "SANITARIOS"
)

var Categories = []Category{
	CategoryParcelas, CategoryBungalows, CategoryGlamping, CategoryRestaurant,
	CategoryCocina, CategoryTTOO, CategorySanitarios,
}

var categoryLabels = map[Category]string{
	CategoryParcelas:   "Parcelas",
	CategoryBungalows:  "Bungalows",
	CategoryGlamping:   "Glamping",
	CategoryRestaurant: "Restaurant",
	CategoryCocina:     "Cocina",
	CategoryTTOO:       "TTOO",
	CategorySanitarios: "Sanitarios",
}

func (c Category) Label() string { return labelOr(categoryLabels, c) }

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func ParseCategory(raw string) (Category, bool) { return lookup(Categories, categoryLabels, raw) }

// Department departamento al que pertenece un usuario.
type Department string

const (
	DepartmentRecepcion   Department = "RECEPCION"
	DepartmentDireccion   Department = "DIRECCION"
	DepartmentSSTT        Department = "SSTT"
	DepartmentRestaurante Department = "RESTAURANTE"
	DepartmentLimpieza    Department = "LIMPIEZA"
)

var Departments = []Department{
	DepartmentRecepcion, DepartmentDireccion, DepartmentSSTT, DepartmentRestaurante, DepartmentLimpieza,
}

var departmentLabels = map[Department]string{
	DepartmentRecepcion:   "Recepción",
	DepartmentDireccion:   "Dirección",
	DepartmentSSTT:        "Servicios Técnicos (SSTT)",
	DepartmentRestaurante: "Restaurante",
	DepartmentLimpieza:    "Limpieza",
}

func (d Department) Label() string { return labelOr(departmentLabels, d) }

func (d Department) Valid() bool {
	_, ok := departmentLabels[d]
	return ok
}

func ParseDepartment(raw string) (Department, bool) {
	return lookup(Departments, departmentLabels, raw)
}

// Role rol de un usuario. Solo ADMIN puede cambiar estados y gestionar usuarios.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var Roles = []Role{RoleAdmin, RoleUser}

var roleLabels = map[Role]string{
	RoleAdmin: "Administrador",
	RoleUser:  "Usuario",
}

func (r Role) Label() string { return labelOr(roleLabels, r) }

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func ParseRole(raw string) (Role, bool) { return lookup(Roles, roleLabels, raw) }

func labelOr[T ~string](labels map[T]string, v T) string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}

func lookup[T ~string](values []T, labels map[T]string, raw string) (T, bool) {
	key := normalizeKey(raw)
	if key == "" {
		return "", false
	}
	for _, v := range values {
		if key == string(v) || key == normalizeKey(labels[v]) {
			return v, true
		}
	}
	return "", false
}

// normalizeKey pasa a mayúsculas, elimina tildes y une palabras con "_":
// "En Proceso" → "EN_PROCESO", "Crítica" → "CRITICA".
func normalizeKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.ToUpper(strings.Join(strings.Fields(plain), "_"))
}
