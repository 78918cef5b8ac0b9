package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
)

var _ repository.VehicleSaleRepository = (*VehicleSaleRepo)(nil)

const saleColumns = `
	SELECT s.id, s.make, s.model, s.year, s.vin, s.price, s.customer_id,
		s.amount_paid, s.amount_due, s.payment_status, s.currency, s.status, s.seller_id,
		s.estimated_delivery, s.sale_date, s.created_at, s.updated_at,
		c.id, c.name, c.email, c.phone,
		sl.id, sl.name, sl.email, sl.phone`

const saleJoins = `
	LEFT JOIN users c ON c.id = s.customer_id
	LEFT JOIN users sl ON sl.id = s.seller_id`

const saleSelect = saleColumns + `
	FROM vehicle_sales s` + saleJoins

// VehicleSaleRepo implementación del puerto VehicleSaleRepository sobre PostgreSQL.
type VehicleSaleRepo struct {
	pool *pgxpool.Pool
}

// NewVehicleSaleRepository construye el adaptador de persistencia para ventas.
func NewVehicleSaleRepository(pool *pgxpool.Pool) *VehicleSaleRepo {
	return &VehicleSaleRepo{pool: pool}
}

// Create persiste una venta.
func (r *VehicleSaleRepo) Create(ctx context.Context, sale *entity.VehicleSale) error {
	query := `
		INSERT INTO vehicle_sales (id, make, model, year, vin, price, customer_id,
			amount_paid, amount_due, payment_status, currency, status, seller_id,
			estimated_delivery, sale_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	v, p := sale.Vehicle, sale.Payment
	_, err := r.pool.Exec(ctx, query,
		sale.ID, v.Make, v.Model, v.Year, v.VIN, v.Price, sale.CustomerID,
		p.AmountPaid, p.AmountDue, string(p.PaymentStatus), p.Currency, string(sale.Status), sale.SellerID,
		sale.EstimatedDelivery, sale.SaleDate, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con cliente y vendedor resueltos.
func (r *VehicleSaleRepo) GetByID(ctx context.Context, id string) (*entity.VehicleSale, error) {
	sale, err := scanSale(r.pool.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle sale: %w", err)
	}
	return sale, nil
}

// List devuelve las ventas que cumplen el filtro en orden de alta.
func (r *VehicleSaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.VehicleSale, error) {
	query := saleSelect + `
		WHERE ($1::text = '' OR s.seller_id = $1::text) AND ($2::text = '' OR s.customer_id = $2::text)
		ORDER BY s.created_at, s.id`
	rows, err := r.pool.Query(ctx, query, filter.SellerID, filter.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle sales: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.VehicleSale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle sale: %w", err)
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

// Exists indica si alguna venta cumple el filtro.
func (r *VehicleSaleRepo) Exists(ctx context.Context, filter repository.SaleFilter) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vehicle_sales
			WHERE ($1::text = '' OR seller_id = $1::text) AND ($2::text = '' OR customer_id = $2::text)
		)`, filter.SellerID, filter.CustomerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("vehicle sale exists: %w", err)
	}
	return exists, nil
}

// Update aplica el patch en un único UPDATE ... RETURNING condicionado al vendedor;
// los campos nil conservan su valor.
func (r *VehicleSaleRepo) Update(ctx context.Context, target repository.SaleTarget, patch repository.SalePatch) (*entity.VehicleSale, error) {
	query := `
		WITH s AS (
			UPDATE vehicle_sales SET
				make               = COALESCE($3::text, make),
				model              = COALESCE($4::text, model),
				year               = COALESCE($5::integer, year),
				vin                = COALESCE($6::text, vin),
				price              = COALESCE($7::numeric, price),
				customer_id        = COALESCE($8::text, customer_id),
				seller_id          = COALESCE($9::text, seller_id),
				amount_paid        = COALESCE($10::numeric, amount_paid),
				amount_due         = COALESCE($11::numeric, amount_due),
				payment_status     = COALESCE($12::text, payment_status),
				currency           = COALESCE($13::text, currency),
				status             = COALESCE($14::text, status),
				estimated_delivery = COALESCE($15::timestamptz, estimated_delivery),
				sale_date          = COALESCE($16::timestamptz, sale_date),
				updated_at         = NOW()
			WHERE id = $1 AND ($2::text = '' OR seller_id = $2::text)
			RETURNING *
		)` + saleColumns + `
		FROM s` + saleJoins
	var paymentStatus, status *string
	if patch.PaymentStatus != nil {
		v := string(*patch.PaymentStatus)
		paymentStatus = &v
	}
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}
	sale, err := scanSale(r.pool.QueryRow(ctx, query,
		target.ID, target.SellerID,
		patch.Make, patch.Model, patch.Year, patch.VIN, patch.Price,
		patch.CustomerID, patch.SellerID,
		patch.AmountPaid, patch.AmountDue, paymentStatus, patch.Currency, status,
		patch.EstimatedDelivery, patch.SaleDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update vehicle sale: %w", err)
	}
	return sale, nil
}

// Delete elimina la venta; false si no existía.
func (r *VehicleSaleRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicle_sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete vehicle sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanSale(row pgx.Row) (*entity.VehicleSale, error) {
	var s entity.VehicleSale
	var paymentStatus, status string
	var customer, seller nullableRef
	dest := []any{
		&s.ID, &s.Vehicle.Make, &s.Vehicle.Model, &s.Vehicle.Year, &s.Vehicle.VIN, &s.Vehicle.Price,
		&s.CustomerID, &s.Payment.AmountPaid, &s.Payment.AmountDue, &paymentStatus, &s.Payment.Currency,
		&status, &s.SellerID, &s.EstimatedDelivery, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
	}
	dest = append(dest, customer.targets()...)
	dest = append(dest, seller.targets()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Payment.PaymentStatus = entity.PaymentStatus(paymentStatus)
	s.Status = entity.SaleStatus(status)
	s.Customer = customer.value()
	s.Seller = seller.value()
	return &s, nil
}
