package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrProtectedAccount   = errors.New("la cuenta de súper administrador no puede modificarse")
)

// PersistWarning indica que la mutación se aplicó en memoria pero el guardado
// en el almacenamiento falló. No se revierte el estado.
type PersistWarning struct {
	Err error
}

func (w *PersistWarning) Error() string {
	return fmt.Sprintf("cambios aplicados pero no guardados: %v", w.Err)
}

func (w *PersistWarning) Unwrap() error { return w.Err }

// IsPersistWarning informa si err es (o envuelve) un PersistWarning.
func IsPersistWarning(err error) bool {
	var w *PersistWarning
	return errors.As(err, &w)
}
