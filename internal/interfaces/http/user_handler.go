package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/application/usecase"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// UserHandler maneja el directorio de usuarios para personal autenticado.
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar usuarios
// @Description  admin ve todos con createdBy resuelto; employee solo los que aprovisionó.
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Aprovisionar usuario
// @Description  Crea una cuenta activa. admin puede crear cualquier rol; employee solo customer.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      200   {object}  dto.CreateUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/create [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	actor := GetActor(c)
	user, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("actor_id", actor.ID).Str("user_id", user.ID).Str("role", user.Role).Msg("usuario aprovisionado")
	return c.JSON(dto.CreateUserResponse{
		Msg:  "User created successfully. Please securely share the login credentials.",
		User: user,
	})
}

// Approve godoc
// @Summary      Aprobar usuario
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/approve/{id} [put]
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	actor := GetActor(c)
	if _, err := h.uc.Approve(c.UserContext(), actor, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("actor_id", actor.ID).Str("user_id", c.Params("id")).Msg("usuario aprobado")
	return c.JSON(dto.MessageResponse{Msg: "User approved successfully"})
}

// Suspend godoc
// @Summary      Suspender usuario
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/suspend/{id} [put]
func (h *UserHandler) Suspend(c *fiber.Ctx) error {
	actor := GetActor(c)
	if _, err := h.uc.Suspend(c.UserContext(), actor, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("actor_id", actor.ID).Str("user_id", c.Params("id")).Msg("usuario suspendido")
	return c.JSON(dto.MessageResponse{Msg: "User suspended successfully"})
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar usuario
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "User deleted"})
}
