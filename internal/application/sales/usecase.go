// Package sales contiene los casos de uso del libro de ventas de vehículos.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/domain"
	"github.com/jhoicas/autoventas-api/internal/domain/access"
	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

// ReceiptRenderer genera el comprobante de una venta.
type ReceiptRenderer interface {
	RenderSaleReceipt(sale *entity.VehicleSale) ([]byte, error)
}

// SaleUseCase aplica capacidades y visibilidad sobre el libro de ventas.
type SaleUseCase struct {
	sales    repository.VehicleSaleRepository
	users    repository.UserRepository
	receipts ReceiptRenderer
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(sales repository.VehicleSaleRepository, users repository.UserRepository, receipts ReceiptRenderer) *SaleUseCase {
	return &SaleUseCase{sales: sales, users: users, receipts: receipts, now: time.Now}
}

func (uc *SaleUseCase) rules() dto.Rules {
	return dto.Rules{Now: uc.now()}
}

func (uc *SaleUseCase) list(ctx context.Context, filter repository.SaleFilter) ([]*dto.SaleResponse, error) {
	items, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	return dto.NewSaleResponses(items), nil
}

// List lista ventas: admin todas (con filtro opcional de vendedor), employee solo las suyas.
func (uc *SaleUseCase) List(ctx context.Context, actor access.Actor, seller string) ([]*dto.SaleResponse, error) {
	if err := access.Require(actor, access.ListSales); err != nil {
		return nil, err
	}
	filter, err := access.SaleScope(actor, seller)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, filter)
}

// ListForCustomer lista las ventas de un cliente compuestas con la visibilidad del actor.
func (uc *SaleUseCase) ListForCustomer(ctx context.Context, actor access.Actor, customerID string) ([]*dto.SaleResponse, error) {
	if err := access.Require(actor, access.ListCustomer); err != nil {
		return nil, err
	}
	filter, err := access.CustomerSaleScope(actor, customerID)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, filter)
}

// ListMine lista las compras del cliente autenticado.
func (uc *SaleUseCase) ListMine(ctx context.Context, actor access.Actor) ([]*dto.SaleResponse, error) {
	if err := access.Require(actor, access.ListOwnSales); err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.SaleFilter{CustomerID: actor.ID})
}

// Create registra una venta con el actor como vendedor.
func (uc *SaleUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := access.Require(actor, access.CreateSale); err != nil {
		return nil, err
	}
	if err := in.Validate(uc.rules()); err != nil {
		return nil, err
	}
	customerID := strings.TrimSpace(in.Customer)
	if _, err := uc.resolveCustomer(ctx, actor, customerID, domain.ErrCustomerNotFound); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	v, p := in.VehicleDetails, in.PaymentDetails
	sale := &entity.VehicleSale{
		ID: uuid.NewString(),
		Vehicle: entity.VehicleDetails{
			Make:  strings.TrimSpace(*v.Make),
			Model: strings.TrimSpace(*v.Model),
			Year:  *v.Year,
			VIN:   strings.TrimSpace(*v.VIN),
			Price: *v.Price,
		},
		CustomerID: customerID,
		Payment: entity.PaymentDetails{
			AmountPaid:    *p.AmountPaid,
			PaymentStatus: entity.PaymentStatusPending,
			Currency:      strings.ToUpper(strings.TrimSpace(*p.Currency)),
		},
		Status:    entity.SaleStatusPending,
		SellerID:  actor.ID,
		SaleDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.AmountDue != nil {
		sale.Payment.AmountDue = decimal.NewNullDecimal(*p.AmountDue)
	}
	if p.PaymentStatus != nil {
		sale.Payment.PaymentStatus = entity.PaymentStatus(*p.PaymentStatus)
	}
	if in.EstimatedDelivery != nil {
		d, err := dto.ParseISODate(*in.EstimatedDelivery)
		if err != nil {
			return nil, domain.NewValidationError("estimatedDelivery", err.Error())
		}
		sale.EstimatedDelivery = &d
	}
	if err := uc.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("crear venta: %w", err)
	}
	return uc.reload(ctx, sale.ID)
}

// Update aplica un patch parcial a una venta que el actor puede modificar.
// La escritura queda condicionada a que el actor siga pudiendo modificarla.
func (uc *SaleUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := access.Require(actor, access.UpdateSale); err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	if !access.CanModifySale(actor, sale) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(uc.rules()); err != nil {
		return nil, err
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	if in.Seller != nil {
		if err := access.Require(actor, access.ReassignSale); err != nil {
			return nil, err
		}
		sellerID := strings.TrimSpace(*in.Seller)
		seller, err := uc.users.GetByID(ctx, sellerID)
		if err != nil {
			return nil, fmt.Errorf("buscar vendedor: %w", err)
		}
		if seller == nil || !seller.Role.IsStaff() {
			return nil, domain.NewValidationError("seller", dto.MsgSellerMustBeStaff)
		}
		patch.SellerID = &sellerID
	}
	if in.Customer != nil {
		customerID := strings.TrimSpace(*in.Customer)
		notFound := domain.NewValidationError("customer", dto.MsgCustomerMustBeRole)
		if _, err := uc.resolveCustomer(ctx, actor, customerID, notFound); err != nil {
			return nil, err
		}
		patch.CustomerID = &customerID
	}

	updated, err := uc.sales.Update(ctx, access.SaleTarget(actor, id), patch)
	if err != nil {
		return nil, fmt.Errorf("actualizar venta: %w", err)
	}
	if updated == nil {
		// la venta se borró o se reasignó a otro vendedor después de la lectura
		return nil, uc.lostTarget(ctx, id)
	}
	return dto.NewSaleResponse(updated), nil
}

func (uc *SaleUseCase) lostTarget(ctx context.Context, id string) error {
	current, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar venta: %w", err)
	}
	if current == nil {
		return domain.ErrSaleNotFound
	}
	return domain.ErrForbidden
}

// Delete borra una venta (solo admin).
func (uc *SaleUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.DeleteSale); err != nil {
		return err
	}
	ok, err := uc.sales.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("borrar venta: %w", err)
	}
	if !ok {
		return domain.ErrSaleNotFound
	}
	return nil
}

// Receipt genera el comprobante PDF. Una venta no visible para el actor se reporta como inexistente.
func (uc *SaleUseCase) Receipt(ctx context.Context, actor access.Actor, id string) ([]byte, error) {
	if err := access.Require(actor, access.ViewReceipt); err != nil {
		return nil, err
	}
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar venta: %w", err)
	}
	if sale == nil || !access.CanViewSale(actor, sale) {
		return nil, domain.ErrSaleNotFound
	}
	pdf, err := uc.receipts.RenderSaleReceipt(sale)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, nil
}

// resolveCustomer exige que el id apunte a un customer que el actor puede atender.
// notFound es el error a devolver si el usuario no existe.
func (uc *SaleUseCase) resolveCustomer(ctx context.Context, actor access.Actor, id string, notFound error) (*entity.User, error) {
	customer, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if customer == nil {
		return nil, notFound
	}
	if customer.Role != entity.RoleCustomer {
		return nil, domain.NewValidationError("customer", dto.MsgCustomerMustBeRole)
	}
	if !access.CanSellTo(actor, customer) {
		return nil, domain.ErrUnauthorizedCustomer
	}
	return customer, nil
}

func (uc *SaleUseCase) reload(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releer venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return dto.NewSaleResponse(sale), nil
}

// buildPatch traduce el cuerpo a cambios parciales; lo ausente se conserva.
func buildPatch(in dto.UpdateSaleRequest) (repository.SalePatch, error) {
	var patch repository.SalePatch
	if v := in.VehicleDetails; v != nil {
		patch.Make = trimmed(v.Make)
		patch.Model = trimmed(v.Model)
		patch.Year = v.Year
		patch.VIN = trimmed(v.VIN)
		patch.Price = v.Price
	}
	if p := in.PaymentDetails; p != nil {
		patch.AmountPaid = p.AmountPaid
		patch.AmountDue = p.AmountDue
		if p.PaymentStatus != nil {
			status := entity.PaymentStatus(*p.PaymentStatus)
			patch.PaymentStatus = &status
		}
		if p.Currency != nil {
			currency := strings.ToUpper(strings.TrimSpace(*p.Currency))
			patch.Currency = &currency
		}
	}
	if in.Status != nil {
		status := entity.SaleStatus(*in.Status)
		patch.Status = &status
	}
	if in.EstimatedDelivery != nil {
		d, err := dto.ParseISODate(*in.EstimatedDelivery)
		if err != nil {
			return patch, domain.NewValidationError("estimatedDelivery", err.Error())
		}
		patch.EstimatedDelivery = &d
	}
	if in.SaleDate != nil {
		d, err := dto.ParseISODate(*in.SaleDate)
		if err != nil {
			return patch, domain.NewValidationError("saleDate", err.Error())
		}
		patch.SaleDate = &d
	}
	return patch, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
