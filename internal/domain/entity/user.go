package entity

import "time"

// Role es el rol de un usuario. Conjunto cerrado: admin, employee, customer.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// IsStaff indica si el rol puede vender y aprovisionar cuentas.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// UserStatus es el estado del ciclo de vida de la cuenta.
type UserStatus string

// Estados de cuenta: pending -> active <-> suspended.
const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// Valid indica si el estado es conocido.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	}
	return false
}

// UserRef vista resumida de un usuario referenciado (createdBy, seller, customer).
type UserRef struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// User representa una cuenta del sistema.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string // bcrypt hash
	Role             Role
	Phone            string
	Status           UserStatus
	CreatedBy        *string  // nil para auto-registro
	CreatedByRef     *UserRef // solo se rellena en listados de admin
	ResetToken       string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCreatedBy indica si la cuenta fue aprovisionada por el usuario dado.
func (u *User) IsCreatedBy(userID string) bool {
	return u.CreatedBy != nil && *u.CreatedBy == userID
}
