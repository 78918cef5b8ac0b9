package dto

import (
	"time"

	"github.com/jhoicas/autoventas-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MessageResponse cuerpo de éxito con solo un mensaje.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ValidationErrorResponse cuerpo 400 con los errores por campo.
type ValidationErrorResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

// Rules parámetros de validación que dependen de la configuración o del reloj.
type Rules struct {
	PhoneRegion string
	Now         time.Time
}

// UserRefResponse referencia resumida a otro usuario.
type UserRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
