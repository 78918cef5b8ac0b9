package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.phone, u.status, u.created_by,
	u.reset_token, u.reset_token_expiry, u.created_at, u.updated_at`

// scopeClause restringe por id y, si $2 no está vacío, por created_by.
const scopeClause = `u.id = $1 AND ($2::text = '' OR u.created_by = $2::text)`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, phone, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.Phone, string(user.Status),
		user.CreatedBy, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE lower(u.email) = lower($1)`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List devuelve los usuarios que cumplen el filtro con el creador resuelto.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `, c.id, c.name, c.email, c.phone
		FROM users u
		LEFT JOIN users c ON c.id = u.created_by
		WHERE ($1::text = '' OR u.id = $1::text) AND ($2::text = '' OR u.created_by = $2::text)
		ORDER BY u.created_at, u.id`
	rows, err := r.pool.Query(ctx, query, filter.ID, filter.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		var ref nullableRef
		u, err := scanUser(rows, ref.targets()...)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedByRef = ref.value()
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado en un único UPDATE ... RETURNING sobre el filtro.
func (r *UserRepo) UpdateStatus(ctx context.Context, filter repository.UserFilter, status entity.UserStatus) (*entity.User, error) {
	query := `
		UPDATE users u SET status = $3, updated_at = NOW()
		WHERE ` + scopeClause + `
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, filter.ID, filter.CreatedBy, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user status: %w", err)
	}
	return u, nil
}

// Update aplica el patch en un único UPDATE ... RETURNING; los campos nil conservan su valor.
func (r *UserRepo) Update(ctx context.Context, filter repository.UserFilter, patch repository.UserPatch) (*entity.User, error) {
	query := `
		UPDATE users u SET
			name          = COALESCE($3, u.name),
			email         = COALESCE($4, u.email),
			phone         = COALESCE($5, u.phone),
			password_hash = COALESCE($6, u.password_hash),
			role          = COALESCE($7, u.role),
			status        = COALESCE($8, u.status),
			updated_at    = NOW()
		WHERE ` + scopeClause + `
		RETURNING ` + userColumns
	var role, status *string
	if patch.Role != nil {
		s := string(*patch.Role)
		role = &s
	}
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	u, err := scanUser(r.pool.QueryRow(ctx, query,
		filter.ID, filter.CreatedBy,
		patch.Name, patch.Email, patch.Phone, patch.PasswordHash, role, status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// SetResetToken guarda el token de restablecimiento y su vencimiento.
func (r *UserRepo) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW() WHERE id = $1`,
		id, token, expiry)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetPassword guarda el hash nuevo y limpia el token.
func (r *UserRepo) ResetPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, reset_token = '', reset_token_expiry = NULL, updated_at = NOW()
		 WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// HasCreatedUsers indica si alguna cuenta tiene a creatorID como creador.
func (r *UserRepo) HasCreatedUsers(ctx context.Context, creatorID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE created_by = $1)`, creatorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("users created by: %w", err)
	}
	return exists, nil
}

// Delete elimina el usuario que cumple el filtro.
func (r *UserRepo) Delete(ctx context.Context, filter repository.UserFilter) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users u WHERE `+scopeClause, filter.ID, filter.CreatedBy)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row, extra ...any) (*entity.User, error) {
	var u entity.User
	var role, status string
	dest := []any{
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Phone, &status, &u.CreatedBy,
		&u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.Status = entity.UserStatus(status)
	return &u, nil
}

// nullableRef destino de escaneo para un usuario unido con LEFT JOIN.
type nullableRef struct {
	id, name, email, phone *string
}

func (n *nullableRef) targets() []any {
	return []any{&n.id, &n.name, &n.email, &n.phone}
}

func (n *nullableRef) value() *entity.UserRef {
	if n.id == nil {
		return nil
	}
	ref := &entity.UserRef{ID: *n.id}
	if n.name != nil {
		ref.Name = *n.name
	}
	if n.email != nil {
		ref.Email = *n.email
	}
	if n.phone != nil {
		ref.Phone = *n.phone
	}
	return ref
}
