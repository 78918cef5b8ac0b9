package repository

import (
	"context"
	"time"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

// UserFilter filtro de igualdad para lecturas y mutaciones de usuarios.
// Campos vacíos no filtran. CreatedBy es el predicado de visibilidad de un employee.
type UserFilter struct {
	ID        string
	CreatedBy string
}

// UserPatch cambios parciales sobre un usuario; nil conserva el valor actual.
type UserPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string
	Role         *entity.Role
	Status       *entity.UserStatus
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	// Create persiste un usuario; devuelve domain.ErrEmailAlreadyExists si el email está tomado.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve los usuarios que cumplen el filtro con CreatedByRef resuelto.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	// UpdateStatus y Update son find-and-update atómicos sobre el filtro (ID obligatorio).
	UpdateStatus(ctx context.Context, filter UserFilter, status entity.UserStatus) (*entity.User, error)
	Update(ctx context.Context, filter UserFilter, patch UserPatch) (*entity.User, error)
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// ResetPassword guarda el nuevo hash y limpia el token de restablecimiento.
	ResetPassword(ctx context.Context, id, passwordHash string) error
	// HasCreatedUsers indica si alguna cuenta fue aprovisionada por creatorID.
	HasCreatedUsers(ctx context.Context, creatorID string) (bool, error)
	// Delete devuelve false si ningún registro cumplía el filtro.
	Delete(ctx context.Context, filter UserFilter) (bool, error)
}
