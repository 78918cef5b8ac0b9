package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// Mensajes de error expuestos por la API.
const (
	msgNoToken              = "No token, authorization denied"
	msgTokenNotValid        = "Token is not valid"
	msgGateSuspended        = "Your account is suspended. Contact admin."
	msgGatePending          = "Your account is pending approval. Please wait for admin approval."
	msgLoginSuspended       = "Your account has been suspended."
	msgLoginPending         = "Your account is awaiting admin approval."
	msgAccessDenied         = "Access denied"
	msgUnauthorizedCustomer = "Access denied: Unauthorized customer"
	msgUserNotFound         = "User not found"
	msgSaleNotFound         = "Sale not found"
	msgCustomerNotFound     = "Customer not found"
	msgNotFound             = "Not found"
	msgUserExists           = "User already exists"
	msgInvalidRole          = "Invalid role specified"
	msgInvalidCredentials   = "Invalid credentials"
	msgInvalidResetToken    = "Token is invalid or has expired"
	msgInvalidBody          = "Invalid request body"
	msgServerError          = "Server error"
)

// errorStatus traduce un error de dominio a estado HTTP y mensaje. Las variantes concretas van antes que su sentinel base.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, msgTokenNotValid
	case errors.Is(err, domain.ErrAccountSuspended):
		return fiber.StatusForbidden, msgGateSuspended
	case errors.Is(err, domain.ErrAccountPending):
		return fiber.StatusForbidden, msgGatePending
	case errors.Is(err, domain.ErrUnauthorizedCustomer):
		return fiber.StatusForbidden, msgUnauthorizedCustomer
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, msgAccessDenied
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, msgUserNotFound
	case errors.Is(err, domain.ErrSaleNotFound):
		return fiber.StatusNotFound, msgSaleNotFound
	case errors.Is(err, domain.ErrCustomerNotFound):
		return fiber.StatusNotFound, msgCustomerNotFound
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, msgUserExists
	case errors.Is(err, domain.ErrInvalidRole):
		return fiber.StatusBadRequest, msgInvalidRole
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, domain.ErrInvalidOrExpiredToken):
		return fiber.StatusBadRequest, msgInvalidResetToken
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, msgInvalidBody
	}
	return fiber.StatusInternalServerError, msgServerError
}

// respondError escribe la respuesta de error. Los errores internos se registran y nunca se exponen.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: verr.Fields})
	}
	status, msg := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Msg: msg})
}

// badBody respuesta para cuerpos JSON ilegibles.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Msg: msgInvalidBody})
}
