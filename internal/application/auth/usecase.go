package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/access"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
	"github.com/jhoicas/autoventas-api/pkg/jwt"
)

// TokenConfig configuración para emisión de tokens.
type TokenConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
	ResetTTL  time.Duration
}

// PasswordHasher hashea y verifica contraseñas.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// ResetMailer entrega el enlace de restablecimiento al usuario.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, user *entity.User, token string) error
}

// AuthUseCase casos de uso públicos de cuentas y autenticación de peticiones.
type AuthUseCase struct {
	users       repository.UserRepository
	hasher      PasswordHasher
	mailer      ResetMailer
	tokens      TokenConfig
	phoneRegion string
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher PasswordHasher, mailer ResetMailer, tokens TokenConfig, phoneRegion string) *AuthUseCase {
	return &AuthUseCase{
		users:       users,
		hasher:      hasher,
		mailer:      mailer,
		tokens:      tokens,
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

func (uc *AuthUseCase) rules() dto.Rules {
	return dto.Rules{PhoneRegion: uc.phoneRegion, Now: uc.now()}
}

// NormalizeEmail compara y guarda emails en minúsculas y sin espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register auto-registro público: siempre role=customer, status=pending y sin createdBy.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	if err := in.Validate(uc.rules()); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		Phone:        strings.TrimSpace(in.Phone),
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica credenciales y estado y emite el token de acceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("buscar email: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !uc.hasher.Check(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if err := statusError(user.Status); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.tokens.Secret, user.ID, string(user.Role), uc.tokens.Issuer, uc.tokens.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}

// ForgotPassword emite un token de restablecimiento, lo guarda en el registro y lo entrega por el mailer.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return fmt.Errorf("buscar email: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, err := jwt.GenerateReset(uc.tokens.Secret, user.ID, uc.tokens.Issuer, uc.tokens.ResetTTL)
	if err != nil {
		return err
	}
	expiry := uc.now().UTC().Add(uc.tokens.ResetTTL)
	if err := uc.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return fmt.Errorf("guardar token de restablecimiento: %w", err)
	}
	return uc.mailer.SendPasswordReset(ctx, user, token)
}

// ResetPassword cambia la contraseña si el token es válido, coincide con el guardado y no venció.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token string, in dto.ResetPasswordRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	userID, err := jwt.ParseReset(uc.tokens.Secret, token)
	if err != nil {
		return domain.ErrInvalidOrExpiredToken
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil || user.ResetToken == "" || user.ResetToken != token {
		return domain.ErrInvalidOrExpiredToken
	}
	if user.ResetTokenExpiry == nil || !uc.now().Before(*user.ResetTokenExpiry) {
		return domain.ErrInvalidOrExpiredToken
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return err
	}
	return uc.users.ResetPassword(ctx, user.ID, hash)
}

// Authenticate verifica el token y relee al usuario: rol y estado vienen del almacenamiento, no del token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (access.Actor, error) {
	if token == "" {
		return access.Actor{}, domain.ErrUnauthenticated
	}
	userID, _, err := jwt.Parse(uc.tokens.Secret, token)
	if err != nil {
		return access.Actor{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return access.Actor{}, fmt.Errorf("releer usuario: %w", err)
	}
	if user == nil {
		return access.Actor{}, domain.ErrUnauthenticated
	}
	if err := statusError(user.Status); err != nil {
		return access.Actor{}, err
	}
	return access.Actor{ID: user.ID, Role: user.Role, Status: user.Status}, nil
}

func statusError(status entity.UserStatus) error {
	switch status {
	case entity.UserStatusActive:
		return nil
	case entity.UserStatusSuspended:
		return domain.ErrAccountSuspended
	case entity.UserStatusPending:
		return domain.ErrAccountPending
	}
	return domain.ErrForbidden
}
