package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

// SaleFilter filtro de igualdad para listados de ventas. Campos vacíos no filtran.
type SaleFilter struct {
	SellerID   string
	CustomerID string
}

// SaleTarget identifica la venta a modificar. SellerID vacío no restringe.
type SaleTarget struct {
	ID       string
	SellerID string
}

// SalePatch cambios parciales sobre una venta; nil conserva el valor actual.
type SalePatch struct {
	Make              *string
	Model             *string
	Year              *int
	VIN               *string
	Price             *decimal.Decimal
	CustomerID        *string
	SellerID          *string
	AmountPaid        *decimal.Decimal
	AmountDue         *decimal.Decimal
	PaymentStatus     *entity.PaymentStatus
	Currency          *string
	Status            *entity.SaleStatus
	EstimatedDelivery *time.Time
	SaleDate          *time.Time
}

// VehicleSaleRepository define el puerto de persistencia para VehicleSale.
type VehicleSaleRepository interface {
	Create(ctx context.Context, sale *entity.VehicleSale) error
	// GetByID devuelve (nil, nil) si no existe; Customer y Seller quedan resueltos.
	GetByID(ctx context.Context, id string) (*entity.VehicleSale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.VehicleSale, error)
	// Exists indica si alguna venta cumple el filtro.
	Exists(ctx context.Context, filter SaleFilter) (bool, error)
	// Update es un find-and-update atómico sobre el target; (nil, nil) si nada coincide.
	Update(ctx context.Context, target SaleTarget, patch SalePatch) (*entity.VehicleSale, error)
	Delete(ctx context.Context, id string) (bool, error)
}
