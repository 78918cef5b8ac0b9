// Package mail entrega enlaces de restablecimiento de contraseña.
package mail

import (
	"context"
	"strings"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// LogMailer no envía correo: registra el enlace de restablecimiento en el log.
type LogMailer struct {
	frontendURL string
	log         *logger.Logger
}

// NewLogMailer construye el mailer; frontendURL es la base de los enlaces.
func NewLogMailer(frontendURL string, log *logger.Logger) *LogMailer {
	return &LogMailer{frontendURL: strings.TrimRight(frontendURL, "/"), log: log}
}

// ResetLink arma <frontendURL>/reset-password/<token>.
func (m *LogMailer) ResetLink(token string) string {
	return m.frontendURL + "/reset-password/" + token
}

// SendPasswordReset registra el enlace para el usuario.
func (m *LogMailer) SendPasswordReset(_ context.Context, user *entity.User, token string) error {
	m.log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Str("reset_link", m.ResetLink(token)).
		Msg("enlace de restablecimiento de contraseña generado")
	return nil
}
