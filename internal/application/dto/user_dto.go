package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Mensajes de validación de cuentas.
const (
	msgNameRequired   = "Name is required"
	msgValidEmail     = "Please include a valid email"
	msgPasswordLength = "Password must be at least 6 characters"
	msgPasswordNeeded = "Password is required"
	msgPhoneRequired  = "Phone is required and must be a valid number"
	msgInvalidStatus  = "Status must be one of pending, active, suspended"
	minPasswordLength = 6
)

// Mensajes que el use case usa al cambiar el rol de una cuenta referenciada.
const (
	MsgRoleHasAccounts  = "Role cannot change to customer while the user has provisioned accounts"
	MsgRoleHasSales     = "Role cannot change to customer while the user is the seller of sales"
	MsgRoleHasPurchases = "Role cannot change from customer while the user has purchases"
)

// RegisterRequest auto-registro público. Un campo role en el cuerpo se ignora.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Validate aplica las reglas de formato de registro.
func (r RegisterRequest) Validate(rules Rules) error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error(msgNameRequired)),
		validation.Field(&r.Email, validation.Required.Error(msgValidEmail), is.Email.Error(msgValidEmail)),
		validation.Field(&r.Password, validation.Required.Error(msgPasswordLength), validation.Length(minPasswordLength, 0).Error(msgPasswordLength)),
		validation.Field(&r.Phone, validation.Required.Error(msgPhoneRequired), validation.By(phoneRule(rules.PhoneRegion))),
	))
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate exige email con formato y password presente.
func (r LoginRequest) Validate() error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error(msgValidEmail), is.Email.Error(msgValidEmail)),
		validation.Field(&r.Password, validation.Required.Error(msgPasswordNeeded)),
	))
}

// LoginUser datos del usuario devueltos junto al token.
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// ForgotPasswordRequest solicitud de enlace de restablecimiento.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate exige un email con formato.
func (r ForgotPasswordRequest) Validate() error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error(msgValidEmail), is.Email.Error(msgValidEmail)),
	))
}

// ResetPasswordRequest nueva contraseña; el token viaja en la ruta.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// Validate exige la longitud mínima de contraseña.
func (r ResetPasswordRequest) Validate() error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required.Error(msgPasswordLength), validation.Length(minPasswordLength, 0).Error(msgPasswordLength)),
	))
}

// CreateUserRequest alta de cuenta por personal. El rol se comprueba contra el solicitante en el use case.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// Validate aplica las mismas reglas de campo que el registro.
func (r CreateUserRequest) Validate(rules Rules) error {
	return RegisterRequest{Name: r.Name, Email: r.Email, Password: r.Password, Phone: r.Phone}.Validate(rules)
}

// UpdateUserRequest cambios parciales; los campos ausentes no se tocan.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
}

// Validate valida solo los campos presentes.
func (r UpdateUserRequest) Validate(rules Rules) error {
	return toValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(notBlank(msgNameRequired))),
		validation.Field(&r.Email, validation.By(notBlank(msgValidEmail)), is.Email.Error(msgValidEmail)),
		validation.Field(&r.Password, validation.By(notBlank(msgPasswordLength)), validation.Length(minPasswordLength, 0).Error(msgPasswordLength)),
		validation.Field(&r.Phone, validation.By(notBlank(msgPhoneRequired)), validation.By(phoneRule(rules.PhoneRegion))),
		validation.Field(&r.Status, validation.By(notBlank(msgInvalidStatus)), validation.In("pending", "active", "suspended").Error(msgInvalidStatus)),
	))
}

// UserResponse salida de un usuario (sin hash ni token de restablecimiento).
type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Phone     string           `json:"phone"`
	Status    string           `json:"status"`
	CreatedBy *UserRefResponse `json:"createdBy"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CreateUserResponse respuesta de alta por personal.
type CreateUserResponse struct {
	Msg  string        `json:"msg"`
	User *UserResponse `json:"user"`
}
