package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

func seedUser(t *testing.T, repo *UserRepository, id, email string, role entity.Role, createdBy string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Name: id, Email: email, Role: role, Status: entity.UserStatusActive, CreatedAt: time.Now()}
	if createdBy != "" {
		u.CreatedBy = &createdBy
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_EmailUnicoSinMayusculas(t *testing.T) {
	repo := NewStore().Users()
	seedUser(t, repo, "u1", "alice@example.com", entity.RoleCustomer, "")

	err := repo.Create(context.Background(), &entity.User{ID: "u2", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepository_FiltroDeVisibilidad(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	seedUser(t, repo, "emp-e", "e@example.com", entity.RoleEmployee, "")
	seedUser(t, repo, "emp-f", "f@example.com", entity.RoleEmployee, "")
	seedUser(t, repo, "c1", "c1@example.com", entity.RoleCustomer, "emp-e")
	seedUser(t, repo, "c2", "c2@example.com", entity.RoleCustomer, "emp-f")

	list, err := repo.List(ctx, repository.UserFilter{CreatedBy: "emp-e"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
	require.NotNil(t, list[0].CreatedByRef)
	assert.Equal(t, "e@example.com", list[0].CreatedByRef.Email)

	// emp-e no puede suspender al cliente de emp-f
	u, err := repo.UpdateStatus(ctx, repository.UserFilter{ID: "c2", CreatedBy: "emp-e"}, entity.UserStatusSuspended)
	require.NoError(t, err)
	assert.Nil(t, u)

	stored, err := repo.GetByID(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, stored.Status)

	ok, err := repo.Delete(ctx, repository.UserFilter{ID: "c2", CreatedBy: "emp-e"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_LecturaNoAliasDelAlmacen(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	seedUser(t, repo, "u1", "a@example.com", entity.RoleCustomer, "")

	u, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	u.Name = "mutado"

	again, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", again.Name)
}

func TestUserRepository_ResetPasswordLimpiaToken(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	seedUser(t, repo, "u1", "a@example.com", entity.RoleCustomer, "")

	require.NoError(t, repo.SetResetToken(ctx, "u1", "tok", time.Now().Add(time.Hour)))
	require.NoError(t, repo.ResetPassword(ctx, "u1", "hash-nuevo"))

	u, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "hash-nuevo", u.PasswordHash)
	assert.Empty(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiry)
}

func TestVehicleSaleRepository_ListResuelveReferencias(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedUser(t, store.Users(), "emp-e", "e@example.com", entity.RoleEmployee, "")
	seedUser(t, store.Users(), "c1", "c1@example.com", entity.RoleCustomer, "emp-e")

	sales := store.Sales()
	require.NoError(t, sales.Create(ctx, &entity.VehicleSale{
		ID: "s1", CustomerID: "c1", SellerID: "emp-e",
		Vehicle: entity.VehicleDetails{Make: "Toyota", Price: decimal.NewFromInt(20000)},
	}))
	require.NoError(t, sales.Create(ctx, &entity.VehicleSale{ID: "s2", CustomerID: "c1", SellerID: "otro"}))

	list, err := sales.List(ctx, repository.SaleFilter{SellerID: "emp-e"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Customer)
	assert.Equal(t, "c1@example.com", list[0].Customer.Email)
	require.NotNil(t, list[0].Seller)
	assert.Equal(t, "e@example.com", list[0].Seller.Email)

	ok, err := sales.Delete(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = sales.Delete(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, ok)

	status := entity.SaleStatusShipped
	missing, err := sales.Update(ctx, repository.SaleTarget{ID: "s2"}, repository.SalePatch{Status: &status})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVehicleSaleRepository_UpdateCondicionadoAlVendedor(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedUser(t, store.Users(), "emp-e", "e@example.com", entity.RoleEmployee, "")
	seedUser(t, store.Users(), "emp-f", "f@example.com", entity.RoleEmployee, "")
	sales := store.Sales()
	require.NoError(t, sales.Create(ctx, &entity.VehicleSale{
		ID: "s1", CustomerID: "c1", SellerID: "emp-e", Status: entity.SaleStatusPending,
		Payment: entity.PaymentDetails{AmountPaid: decimal.NewFromInt(1000), Currency: "USD"},
	}))

	paid := decimal.NewFromInt(500)
	out, err := sales.Update(ctx, repository.SaleTarget{ID: "s1", SellerID: "emp-f"}, repository.SalePatch{AmountPaid: &paid})
	require.NoError(t, err)
	assert.Nil(t, out)

	shipped := entity.SaleStatusShipped
	out, err = sales.Update(ctx, repository.SaleTarget{ID: "s1", SellerID: "emp-e"}, repository.SalePatch{Status: &shipped})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.SaleStatusShipped, out.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(out.Payment.AmountPaid))
	assert.Equal(t, "USD", out.Payment.Currency)
	require.NotNil(t, out.Seller)
	assert.Equal(t, "e@example.com", out.Seller.Email)

	exists, err := sales.Exists(ctx, repository.SaleFilter{SellerID: "emp-e"})
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = sales.Exists(ctx, repository.SaleFilter{SellerID: "emp-f"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_HasCreatedUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	seedUser(t, repo, "emp-e", "e@example.com", entity.RoleEmployee, "")
	seedUser(t, repo, "c1", "c1@example.com", entity.RoleCustomer, "emp-e")

	created, err := repo.HasCreatedUsers(ctx, "emp-e")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repo.HasCreatedUsers(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, created)
}
