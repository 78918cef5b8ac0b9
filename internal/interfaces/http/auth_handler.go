package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/auth"
	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// AuthHandler maneja registro, login y restablecimiento de contraseña.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Auto-registro de cliente
// @Description  Crea una cuenta customer en estado pending; el campo role se ignora.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password, phone"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("user_id", user.ID).Msg("usuario registrado, pendiente de aprobación")
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Msg: "User registered successfully. Awaiting admin approval."})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	switch {
	case err == nil:
		h.log.Info().Str("user_id", out.User.ID).Msg("login correcto")
		return c.JSON(out)
	case errors.Is(err, domain.ErrAccountSuspended):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Msg: msgLoginSuspended})
	case errors.Is(err, domain.ErrAccountPending):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Msg: msgLoginPending})
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.log.Warn().Msg("login rechazado: credenciales inválidas")
	}
	return respondError(c, h.log, err)
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Genera un token de una hora y registra el enlace en el log del servidor.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ForgotPassword(c.UserContext(), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Password reset link has been sent to your email"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string                    true  "token de restablecimiento"
// @Param        body   body  dto.ResetPasswordRequest  true  "password"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(c.UserContext(), c.Params("token"), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Password has been reset successfully"})
}
