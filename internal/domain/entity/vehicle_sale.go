package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado logístico de una venta.
type SaleStatus string

// Estados de venta.
const (
	SaleStatusPending    SaleStatus = "pending"
	SaleStatusInProgress SaleStatus = "in progress"
	SaleStatusShipped    SaleStatus = "shipped"
	SaleStatusDelivered  SaleStatus = "delivered"
	SaleStatusCancelled  SaleStatus = "cancelled"
)

// SaleStatuses lista los estados válidos en orden de ciclo de vida.
var SaleStatuses = []SaleStatus{
	SaleStatusPending, SaleStatusInProgress, SaleStatusShipped, SaleStatusDelivered, SaleStatusCancelled,
}

// PaymentStatus estado del cobro.
type PaymentStatus string

// Estados de pago.
const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)

// VehicleDetails datos del vehículo vendido.
type VehicleDetails struct {
	Make  string
	Model string
	Year  int
	VIN   string
	Price decimal.Decimal
}

// PaymentDetails datos del cobro. AmountDue es opcional.
type PaymentDetails struct {
	AmountPaid    decimal.Decimal
	AmountDue     decimal.NullDecimal
	PaymentStatus PaymentStatus
	Currency      string // ISO-4217
}

// VehicleSale registro de venta de un vehículo.
type VehicleSale struct {
	ID                string
	Vehicle           VehicleDetails
	CustomerID        string
	Payment           PaymentDetails
	Status            SaleStatus
	SellerID          string
	EstimatedDelivery *time.Time
	SaleDate          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Referencias resueltas por el repositorio en lecturas (pueden ser nil).
	Customer *UserRef
	Seller   *UserRef
}
