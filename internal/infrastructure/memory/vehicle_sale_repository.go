package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

// VehicleSaleRepository implementación en memoria de repository.VehicleSaleRepository.
type VehicleSaleRepository struct {
	s *Store
}

var _ repository.VehicleSaleRepository = (*VehicleSaleRepository)(nil)

func copySale(v *entity.VehicleSale) *entity.VehicleSale {
	c := *v
	if v.EstimatedDelivery != nil {
		d := *v.EstimatedDelivery
		c.EstimatedDelivery = &d
	}
	c.Customer = nil
	c.Seller = nil
	return &c
}

// withRefs copia la venta y resuelve cliente y vendedor. Exige el lock tomado.
func (r *VehicleSaleRepository) withRefs(v *entity.VehicleSale) *entity.VehicleSale {
	c := copySale(v)
	c.Customer = r.s.userRef(v.CustomerID)
	c.Seller = r.s.userRef(v.SellerID)
	return c
}

// Create inserta la venta.
func (r *VehicleSaleRepository) Create(_ context.Context, sale *entity.VehicleSale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = copySale(sale)
	r.s.saleOrder = append(r.s.saleOrder, sale.ID)
	return nil
}

// GetByID obtiene una venta con referencias resueltas.
func (r *VehicleSaleRepository) GetByID(_ context.Context, id string) (*entity.VehicleSale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.withRefs(v), nil
}

func matchesSale(v *entity.VehicleSale, f repository.SaleFilter) bool {
	if f.SellerID != "" && v.SellerID != f.SellerID {
		return false
	}
	if f.CustomerID != "" && v.CustomerID != f.CustomerID {
		return false
	}
	return true
}

// List devuelve en orden de alta las ventas que cumplen el filtro.
func (r *VehicleSaleRepository) List(_ context.Context, filter repository.SaleFilter) ([]*entity.VehicleSale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.VehicleSale, 0)
	for _, id := range r.s.saleOrder {
		if v := r.s.sales[id]; matchesSale(v, filter) {
			out = append(out, r.withRefs(v))
		}
	}
	return out, nil
}

// Exists indica si alguna venta cumple el filtro.
func (r *VehicleSaleRepository) Exists(_ context.Context, filter repository.SaleFilter) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.sales {
		if matchesSale(v, filter) {
			return true, nil
		}
	}
	return false, nil
}

// Update aplica el patch a la venta que cumple el target.
func (r *VehicleSaleRepository) Update(_ context.Context, target repository.SaleTarget, patch repository.SalePatch) (*entity.VehicleSale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[target.ID]
	if !ok || (target.SellerID != "" && v.SellerID != target.SellerID) {
		return nil, nil
	}
	applySalePatch(v, patch)
	v.UpdatedAt = time.Now().UTC()
	return r.withRefs(v), nil
}

func applySalePatch(v *entity.VehicleSale, p repository.SalePatch) {
	setString(&v.Vehicle.Make, p.Make)
	setString(&v.Vehicle.Model, p.Model)
	setString(&v.Vehicle.VIN, p.VIN)
	if p.Year != nil {
		v.Vehicle.Year = *p.Year
	}
	if p.Price != nil {
		v.Vehicle.Price = *p.Price
	}
	setString(&v.CustomerID, p.CustomerID)
	setString(&v.SellerID, p.SellerID)
	if p.AmountPaid != nil {
		v.Payment.AmountPaid = *p.AmountPaid
	}
	if p.AmountDue != nil {
		v.Payment.AmountDue = decimal.NewNullDecimal(*p.AmountDue)
	}
	if p.PaymentStatus != nil {
		v.Payment.PaymentStatus = *p.PaymentStatus
	}
	setString(&v.Payment.Currency, p.Currency)
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.EstimatedDelivery != nil {
		d := *p.EstimatedDelivery
		v.EstimatedDelivery = &d
	}
	if p.SaleDate != nil {
		v.SaleDate = *p.SaleDate
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Delete elimina la venta; false si no existía.
func (r *VehicleSaleRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return false, nil
	}
	delete(r.s.sales, id)
	r.s.saleOrder = removeID(r.s.saleOrder, id)
	return true, nil
}
