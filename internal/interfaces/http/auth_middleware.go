package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain/access"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// TokenHeader cabecera que transporta el token de acceso.
const TokenHeader = "x-auth-token"

// LocalActor clave de Locals con el actor autenticado.
const LocalActor = "actor"

// authenticator es el contrato mínimo que necesita el middleware; lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (access.Actor, error)
}

// AuthMiddleware valida el token de x-auth-token, relee al usuario y bloquea cuentas pending o suspended.
// El actor queda en c.Locals(LocalActor).
func AuthMiddleware(auth authenticator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Msg: msgNoToken})
		}
		actor, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return respondError(c, log, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después de AuthMiddleware); vacío si no hay.
func GetActor(c *fiber.Ctx) access.Actor {
	actor, _ := c.Locals(LocalActor).(access.Actor)
	return actor
}

// RequireCapability corta con 403 si el rol del actor no tiene la capacidad.
// Debe usarse DESPUÉS de AuthMiddleware; los casos de uso repiten la comprobación.
func RequireCapability(action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.Can(GetActor(c).Role, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Msg: msgAccessDenied})
		}
		return c.Next()
	}
}
