package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidRole           = errors.New("rol no permitido para el solicitante")
	ErrInvalidCredentials    = errors.New("credenciales inválidas")
	ErrInvalidOrExpiredToken = errors.New("token inválido o expirado")
	ErrUnauthenticated       = errors.New("no autenticado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrAccountSuspended      = fmt.Errorf("%w: cuenta suspendida", ErrForbidden)
	ErrAccountPending        = fmt.Errorf("%w: cuenta pendiente de aprobación", ErrForbidden)

	// Variantes con recurso concreto; siguen cumpliendo errors.Is con su sentinel base.
	ErrUserNotFound         = fmt.Errorf("%w: usuario", ErrNotFound)
	ErrSaleNotFound         = fmt.Errorf("%w: venta", ErrNotFound)
	ErrCustomerNotFound     = fmt.Errorf("%w: cliente", ErrNotFound)
	ErrUnauthorizedCustomer = fmt.Errorf("%w: cliente no gestionado por el vendedor", ErrForbidden)
)

// FieldError describe un campo rechazado por la validación.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationError agrupa los errores por campo de una petición. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError de un solo campo.
func NewValidationError(param, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Param: param, Msg: msg}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Param+": "+f.Msg)
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
