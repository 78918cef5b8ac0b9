package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autoventas-api/internal/application/auth"
	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/access"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio del directorio de usuarios para personal autenticado.
type UserUseCase struct {
	repo        repository.UserRepository
	sales       repository.VehicleSaleRepository
	hasher      auth.PasswordHasher
	phoneRegion string
	now         func() time.Time
}

// NewUserUseCase construye el caso de uso. El repositorio de ventas se consulta al cambiar
// el rol de una cuenta que otras entidades referencian.
func NewUserUseCase(repo repository.UserRepository, sales repository.VehicleSaleRepository, hasher auth.PasswordHasher, phoneRegion string) *UserUseCase {
	return &UserUseCase{repo: repo, sales: sales, hasher: hasher, phoneRegion: phoneRegion, now: time.Now}
}

func (uc *UserUseCase) rules() dto.Rules {
	return dto.Rules{PhoneRegion: uc.phoneRegion, Now: uc.now()}
}

// List devuelve los usuarios visibles para el actor: admin todos, employee los que aprovisionó.
func (uc *UserUseCase) List(ctx context.Context, actor access.Actor) ([]*dto.UserResponse, error) {
	if err := access.Require(actor, access.ListUsers); err != nil {
		return nil, err
	}
	filter, err := access.UserScope(actor)
	if err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	return dto.NewUserResponses(users), nil
}

// Create da de alta una cuenta activa aprovisionada por el actor.
func (uc *UserUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Require(actor, access.CreateUser); err != nil {
		return nil, err
	}
	role := entity.Role(strings.TrimSpace(in.Role))
	if !access.CanAssignRole(actor, role) {
		return nil, domain.ErrInvalidRole
	}
	if err := in.Validate(uc.rules()); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
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
	createdBy := actor.ID
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Status:       entity.UserStatusActive,
		CreatedBy:    &createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Approve activa la cuenta si es visible para el actor.
func (uc *UserUseCase) Approve(ctx context.Context, actor access.Actor, id string) (*dto.UserResponse, error) {
	return uc.setStatus(ctx, actor, access.ApproveUser, id, entity.UserStatusActive)
}

// Suspend suspende la cuenta si es visible para el actor.
func (uc *UserUseCase) Suspend(ctx context.Context, actor access.Actor, id string) (*dto.UserResponse, error) {
	return uc.setStatus(ctx, actor, access.SuspendUser, id, entity.UserStatusSuspended)
}

func (uc *UserUseCase) setStatus(ctx context.Context, actor access.Actor, action access.Action, id string, status entity.UserStatus) (*dto.UserResponse, error) {
	if err := access.Require(actor, action); err != nil {
		return nil, err
	}
	filter, err := access.UserTarget(actor, id)
	if err != nil {
		return nil, err
	}
	user, err := uc.repo.UpdateStatus(ctx, filter, status)
	if err != nil {
		return nil, fmt.Errorf("cambiar estado: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// Update aplica cambios parciales a una cuenta visible para el actor.
// Una cuenta fuera de la visibilidad del actor se reporta como inexistente antes de mirar el cuerpo.
func (uc *UserUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.Require(actor, access.UpdateUser); err != nil {
		return nil, err
	}
	filter, err := access.UserTarget(actor, id)
	if err != nil {
		return nil, err
	}
	target, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if target == nil || !access.CanManageUser(actor, target) {
		return nil, domain.ErrUserNotFound
	}
	if err := in.Validate(uc.rules()); err != nil {
		return nil, err
	}

	var patch repository.UserPatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		patch.Phone = &phone
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		existing, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("buscar email: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		patch.Email = &email
	}
	if in.Role != nil {
		role := entity.Role(strings.TrimSpace(*in.Role))
		if !access.CanAssignRole(actor, role) {
			return nil, domain.ErrInvalidRole
		}
		if err := uc.checkRoleChange(ctx, target, role); err != nil {
			return nil, err
		}
		patch.Role = &role
	}
	if in.Status != nil {
		status := entity.UserStatus(*in.Status)
		patch.Status = &status
	}
	if in.Password != nil {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := uc.repo.Update(ctx, filter, patch)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

// checkRoleChange rechaza pasar entre personal y customer si la cuenta está referenciada:
// created_by y seller apuntan a personal, customer apunta a un customer.
func (uc *UserUseCase) checkRoleChange(ctx context.Context, user *entity.User, role entity.Role) error {
	if user.Role.IsStaff() == role.IsStaff() {
		return nil
	}
	if user.Role.IsStaff() {
		created, err := uc.repo.HasCreatedUsers(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("buscar cuentas aprovisionadas: %w", err)
		}
		if created {
			return domain.NewValidationError("role", dto.MsgRoleHasAccounts)
		}
		sold, err := uc.sales.Exists(ctx, repository.SaleFilter{SellerID: user.ID})
		if err != nil {
			return fmt.Errorf("buscar ventas del vendedor: %w", err)
		}
		if sold {
			return domain.NewValidationError("role", dto.MsgRoleHasSales)
		}
		return nil
	}
	bought, err := uc.sales.Exists(ctx, repository.SaleFilter{CustomerID: user.ID})
	if err != nil {
		return fmt.Errorf("buscar compras del cliente: %w", err)
	}
	if bought {
		return domain.NewValidationError("role", dto.MsgRoleHasPurchases)
	}
	return nil
}

// Delete borra la cuenta (solo admin). Las ventas que la referencian se conservan.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.DeleteUser); err != nil {
		return err
	}
	filter, err := access.UserTarget(actor, id)
	if err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, filter)
	if err != nil {
		return fmt.Errorf("borrar usuario: %w", err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
