package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

func copyUser(u *entity.User) *entity.User {
	c := *u
	if u.CreatedBy != nil {
		v := *u.CreatedBy
		c.CreatedBy = &v
	}
	if u.ResetTokenExpiry != nil {
		v := *u.ResetTokenExpiry
		c.ResetTokenExpiry = &v
	}
	c.CreatedByRef = nil
	return &c
}

func matchesUser(u *entity.User, f repository.UserFilter) bool {
	if f.ID != "" && u.ID != f.ID {
		return false
	}
	if f.CreatedBy != "" && !u.IsCreatedBy(f.CreatedBy) {
		return false
	}
	return true
}

// emailTaken busca el email sin distinguir mayúsculas, ignorando exceptID. Exige el lock tomado.
func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// findLocked devuelve el registro vivo que cumple el filtro. Exige el lock tomado.
func (r *UserRepository) findLocked(f repository.UserFilter) *entity.User {
	if f.ID == "" {
		return nil
	}
	u, ok := r.s.users[f.ID]
	if !ok || !matchesUser(u, f) {
		return nil
	}
	return u
}

// Create inserta el usuario; el email es único.
func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(user.Email, "") {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[user.ID] = copyUser(user)
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// List devuelve en orden de alta los usuarios que cumplen el filtro.
func (r *UserRepository) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0)
	for _, id := range r.s.userOrder {
		u := r.s.users[id]
		if !matchesUser(u, filter) {
			continue
		}
		c := copyUser(u)
		if u.CreatedBy != nil {
			c.CreatedByRef = r.s.userRef(*u.CreatedBy)
		}
		out = append(out, c)
	}
	return out, nil
}

// UpdateStatus cambia el estado del usuario que cumple el filtro.
func (r *UserRepository) UpdateStatus(_ context.Context, filter repository.UserFilter, status entity.UserStatus) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.findLocked(filter)
	if u == nil {
		return nil, nil
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	return copyUser(u), nil
}

// Update aplica el patch al usuario que cumple el filtro.
func (r *UserRepository) Update(_ context.Context, filter repository.UserFilter, patch repository.UserPatch) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.findLocked(filter)
	if u == nil {
		return nil, nil
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, u.ID) {
		return nil, domain.ErrEmailAlreadyExists
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	u.UpdatedAt = time.Now().UTC()
	return copyUser(u), nil
}

// SetResetToken guarda el token de restablecimiento y su vencimiento.
func (r *UserRepository) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = &expiry
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ResetPassword guarda el hash nuevo y limpia el token.
func (r *UserRepository) ResetPassword(_ context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// HasCreatedUsers indica si alguna cuenta tiene a creatorID como creador.
func (r *UserRepository) HasCreatedUsers(_ context.Context, creatorID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.IsCreatedBy(creatorID) {
			return true, nil
		}
	}
	return false, nil
}

// Delete elimina el usuario que cumple el filtro. No hay borrado en cascada.
func (r *UserRepository) Delete(_ context.Context, filter repository.UserFilter) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.findLocked(filter)
	if u == nil {
		return false, nil
	}
	delete(r.s.users, u.ID)
	r.s.userOrder = removeID(r.s.userOrder, u.ID)
	return true, nil
}
