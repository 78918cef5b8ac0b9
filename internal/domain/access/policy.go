// Package access declara quién puede hacer qué: la tabla de capacidades por rol y los
// predicados de visibilidad que se componen con las consultas de los repositorios.
package access

import (
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

// Action es una operación protegida.
type Action string

// Acciones del directorio de usuarios y del libro de ventas.
const (
	ListUsers    Action = "users:list"
	CreateUser   Action = "users:create"
	ApproveUser  Action = "users:approve"
	SuspendUser  Action = "users:suspend"
	UpdateUser   Action = "users:update"
	DeleteUser   Action = "users:delete"
	ListSales    Action = "sales:list"
	ListCustomer Action = "sales:list_customer"
	ListOwnSales Action = "sales:list_own"
	CreateSale   Action = "sales:create"
	UpdateSale   Action = "sales:update"
	ReassignSale Action = "sales:reassign_seller"
	DeleteSale   Action = "sales:delete"
	ViewReceipt  Action = "sales:receipt"
)

type actionSet map[Action]struct{}

func set(actions ...Action) actionSet {
	s := make(actionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// capabilities es la única declaración de permisos por rol.
var capabilities = map[entity.Role]actionSet{
	entity.RoleAdmin: set(
		ListUsers, CreateUser, ApproveUser, SuspendUser, UpdateUser, DeleteUser,
		ListSales, ListCustomer, CreateSale, UpdateSale, ReassignSale, DeleteSale, ViewReceipt,
	),
	entity.RoleEmployee: set(
		ListUsers, CreateUser, ApproveUser, SuspendUser, UpdateUser,
		ListSales, ListCustomer, CreateSale, UpdateSale, ViewReceipt,
	),
	entity.RoleCustomer: set(ListCustomer, ListOwnSales, ViewReceipt),
}

// creatableRoles roles que cada rol puede asignar al crear o editar cuentas.
var creatableRoles = map[entity.Role][]entity.Role{
	entity.RoleAdmin:    {entity.RoleAdmin, entity.RoleEmployee, entity.RoleCustomer},
	entity.RoleEmployee: {entity.RoleCustomer},
}

// Actor es el solicitante autenticado con su rol y estado vigentes.
type Actor struct {
	ID     string
	Role   entity.Role
	Status entity.UserStatus
}

// Can indica si el rol tiene la capacidad.
func Can(role entity.Role, action Action) bool {
	_, ok := capabilities[role][action]
	return ok
}

// Require devuelve domain.ErrForbidden si el actor no tiene la capacidad.
func Require(actor Actor, action Action) error {
	if !Can(actor.Role, action) {
		return domain.ErrForbidden
	}
	return nil
}

// CanAssignRole indica si el actor puede dar el rol target a una cuenta.
func CanAssignRole(actor Actor, target entity.Role) bool {
	for _, r := range creatableRoles[actor.Role] {
		if r == target {
			return true
		}
	}
	return false
}

// UserScope devuelve el filtro de visibilidad de usuarios para el actor:
// admin ve todo, employee solo lo que aprovisionó, el resto no ve nada.
func UserScope(actor Actor) (repository.UserFilter, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return repository.UserFilter{}, nil
	case entity.RoleEmployee:
		return repository.UserFilter{CreatedBy: actor.ID}, nil
	}
	return repository.UserFilter{}, domain.ErrForbidden
}

// UserTarget compone el filtro de visibilidad con el id objetivo.
func UserTarget(actor Actor, id string) (repository.UserFilter, error) {
	f, err := UserScope(actor)
	if err != nil {
		return f, err
	}
	f.ID = id
	return f, nil
}

// CanManageUser indica si la cuenta está dentro de la visibilidad del actor.
func CanManageUser(actor Actor, user *entity.User) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleEmployee:
		return user.IsCreatedBy(actor.ID)
	}
	return false
}

// SaleScope devuelve el filtro de listados de ventas. seller solo lo respeta un admin.
func SaleScope(actor Actor, seller string) (repository.SaleFilter, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return repository.SaleFilter{SellerID: seller}, nil
	case entity.RoleEmployee:
		return repository.SaleFilter{SellerID: actor.ID}, nil
	}
	return repository.SaleFilter{}, domain.ErrForbidden
}

// CustomerSaleScope filtro de ventas de un cliente concreto visto por el actor.
func CustomerSaleScope(actor Actor, customerID string) (repository.SaleFilter, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return repository.SaleFilter{CustomerID: customerID}, nil
	case entity.RoleEmployee:
		return repository.SaleFilter{CustomerID: customerID, SellerID: actor.ID}, nil
	case entity.RoleCustomer:
		if customerID == actor.ID {
			return repository.SaleFilter{CustomerID: customerID}, nil
		}
	}
	return repository.SaleFilter{}, domain.ErrForbidden
}

// CanModifySale indica si el actor puede editar la venta (admin o vendedor de la misma).
func CanModifySale(actor Actor, sale *entity.VehicleSale) bool {
	if !Can(actor.Role, UpdateSale) {
		return false
	}
	return actor.Role == entity.RoleAdmin || sale.SellerID == actor.ID
}

// SaleTarget compone la condición de escritura sobre una venta: un employee solo
// modifica la venta mientras siga siendo su vendedor.
func SaleTarget(actor Actor, id string) repository.SaleTarget {
	t := repository.SaleTarget{ID: id}
	if actor.Role != entity.RoleAdmin {
		t.SellerID = actor.ID
	}
	return t
}

// CanViewSale indica si la venta es visible para el actor: admin, su vendedor o su cliente.
func CanViewSale(actor Actor, sale *entity.VehicleSale) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleEmployee:
		return sale.SellerID == actor.ID
	case entity.RoleCustomer:
		return sale.CustomerID == actor.ID
	}
	return false
}

// CanSellTo indica si el actor puede registrar ventas para el cliente.
// Un employee solo vende a clientes que él mismo aprovisionó.
func CanSellTo(actor Actor, customer *entity.User) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleEmployee:
		return customer.IsCreatedBy(actor.ID)
	}
	return false
}
