package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// Mensajes de validación de ventas.
const (
	msgMakeRequired       = "Make is required"
	msgModelRequired      = "Model is required"
	msgYearRequired       = "Year is required"
	msgVINRequired        = "VIN is required"
	msgVINLength          = "VIN must be between 11 and 17 characters"
	msgPriceRequired      = "Price is required"
	msgPriceNonNegative   = "Price must be a non-negative number"
	msgAmountPaidRequired = "Amount paid is required"
	msgAmountPaidNegative = "Amount paid must be a non-negative number"
	msgAmountDueNegative  = "Amount due must be a non-negative number"
	msgPaymentStatus      = "Payment status must be Paid or Pending"
	msgCurrencyRequired   = "Currency is required"
	msgCustomerRequired   = "Customer is required"
	msgVehicleRequired    = "Vehicle details are required"
	msgPaymentRequired    = "Payment details are required"
	msgEstimatedDelivery  = "Estimated delivery must be a valid ISO-8601 date"
	msgSaleDate           = "Sale date must be a valid ISO-8601 date"
	msgSaleStatus         = "Status must be one of pending, in progress, shipped, delivered, cancelled"
	msgSellerRequired     = "Seller is required"
	msgCustomerMustBeRole = "Customer must reference a user with role customer"
	msgSellerMustBeStaff  = "Seller must reference an admin or employee"
	minVINLength          = 11
	maxVINLength          = 17
)

// Mensajes que el use case usa al resolver referencias.
const (
	MsgCustomerMustBeRole = msgCustomerMustBeRole
	MsgSellerMustBeStaff  = msgSellerMustBeStaff
)

// VehicleDetailsInput datos del vehículo; en un patch solo cuentan los campos presentes.
type VehicleDetailsInput struct {
	Make  *string          `json:"make"`
	Model *string          `json:"model"`
	Year  *int             `json:"year"`
	VIN   *string          `json:"vin"`
	Price *decimal.Decimal `json:"price"`
}

func (v *VehicleDetailsInput) validate(rules Rules, create bool) error {
	return validation.ValidateStruct(v,
		validation.Field(&v.Make, presence(create, msgMakeRequired)),
		validation.Field(&v.Model, presence(create, msgModelRequired)),
		validation.Field(&v.Year, presence(create, msgYearRequired), validation.By(yearRule(rules.Now))),
		validation.Field(&v.VIN, presence(create, msgVINRequired), validation.Length(minVINLength, maxVINLength).Error(msgVINLength)),
		validation.Field(&v.Price, presence(create, msgPriceRequired), validation.By(nonNegative(msgPriceNonNegative))),
	)
}

// PaymentDetailsInput datos del cobro.
type PaymentDetailsInput struct {
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
	AmountDue     *decimal.Decimal `json:"amountDue"`
	PaymentStatus *string          `json:"paymentStatus"`
	Currency      *string          `json:"currency"`
}

func (p *PaymentDetailsInput) validate(create bool) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.AmountPaid, presence(create, msgAmountPaidRequired), validation.By(nonNegative(msgAmountPaidNegative))),
		validation.Field(&p.AmountDue, validation.By(nonNegative(msgAmountDueNegative))),
		validation.Field(&p.PaymentStatus, validation.By(notBlank(msgPaymentStatus)), validation.In("Paid", "Pending").Error(msgPaymentStatus)),
		validation.Field(&p.Currency, presence(create, msgCurrencyRequired), validation.By(currencyRule)),
	)
}

// CreateSaleRequest alta de venta por personal.
type CreateSaleRequest struct {
	VehicleDetails    *VehicleDetailsInput `json:"vehicleDetails"`
	Customer          string               `json:"customer"`
	PaymentDetails    *PaymentDetailsInput `json:"paymentDetails"`
	EstimatedDelivery *string              `json:"estimatedDelivery"`
}

// Validate comprueba forma y rangos del cuerpo; la existencia del cliente la resuelve el use case.
func (r CreateSaleRequest) Validate(rules Rules) error {
	errs := validation.Errors{
		"customer":          validation.Validate(r.Customer, validation.Required.Error(msgCustomerRequired)),
		"estimatedDelivery": validation.Validate(r.EstimatedDelivery, validation.By(isoDate(msgEstimatedDelivery))),
	}
	if r.VehicleDetails == nil {
		errs["vehicleDetails"] = errors.New(msgVehicleRequired)
	} else {
		errs["vehicleDetails"] = r.VehicleDetails.validate(rules, true)
	}
	if r.PaymentDetails == nil {
		errs["paymentDetails"] = errors.New(msgPaymentRequired)
	} else {
		errs["paymentDetails"] = r.PaymentDetails.validate(true)
	}
	return toValidationError(errs.Filter())
}

// UpdateSaleRequest cambios parciales; los objetos anidados se fusionan campo a campo.
type UpdateSaleRequest struct {
	VehicleDetails    *VehicleDetailsInput `json:"vehicleDetails"`
	Customer          *string              `json:"customer"`
	PaymentDetails    *PaymentDetailsInput `json:"paymentDetails"`
	Status            *string              `json:"status"`
	Seller            *string              `json:"seller"`
	EstimatedDelivery *string              `json:"estimatedDelivery"`
	SaleDate          *string              `json:"saleDate"`
}

// Validate valida solo lo presente.
func (r UpdateSaleRequest) Validate(rules Rules) error {
	statuses := make([]interface{}, 0, 5)
	for _, s := range []string{"pending", "in progress", "shipped", "delivered", "cancelled"} {
		statuses = append(statuses, s)
	}
	errs := validation.Errors{
		"customer":          validation.Validate(r.Customer, validation.By(notBlank(msgCustomerRequired))),
		"seller":            validation.Validate(r.Seller, validation.By(notBlank(msgSellerRequired))),
		"status":            validation.Validate(r.Status, validation.By(notBlank(msgSaleStatus)), validation.In(statuses...).Error(msgSaleStatus)),
		"estimatedDelivery": validation.Validate(r.EstimatedDelivery, validation.By(isoDate(msgEstimatedDelivery))),
		"saleDate":          validation.Validate(r.SaleDate, validation.By(isoDate(msgSaleDate))),
	}
	if r.VehicleDetails != nil {
		errs["vehicleDetails"] = r.VehicleDetails.validate(rules, false)
	}
	if r.PaymentDetails != nil {
		errs["paymentDetails"] = r.PaymentDetails.validate(false)
	}
	return toValidationError(errs.Filter())
}

// presence en alta exige el campo; en patch solo rechaza cadenas vacías.
func presence(create bool, msg string) validation.Rule {
	if create {
		return validation.Required.Error(msg)
	}
	return validation.By(notBlank(msg))
}

// VehicleDetailsResponse salida de vehicleDetails.
type VehicleDetailsResponse struct {
	Make  string          `json:"make"`
	Model string          `json:"model"`
	Year  int             `json:"year"`
	VIN   string          `json:"vin"`
	Price decimal.Decimal `json:"price"`
}

// PaymentDetailsResponse salida de paymentDetails.
type PaymentDetailsResponse struct {
	AmountPaid    decimal.Decimal  `json:"amountPaid"`
	AmountDue     *decimal.Decimal `json:"amountDue,omitempty"`
	PaymentStatus string           `json:"paymentStatus"`
	Currency      string           `json:"currency"`
}

// SaleResponse salida de una venta con cliente y vendedor resueltos.
type SaleResponse struct {
	ID                string                 `json:"id"`
	VehicleDetails    VehicleDetailsResponse `json:"vehicleDetails"`
	Customer          *UserRefResponse       `json:"customer"`
	PaymentDetails    PaymentDetailsResponse `json:"paymentDetails"`
	Status            string                 `json:"status"`
	Seller            *UserRefResponse       `json:"seller"`
	EstimatedDelivery *time.Time             `json:"estimatedDelivery,omitempty"`
	SaleDate          time.Time              `json:"saleDate"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}
