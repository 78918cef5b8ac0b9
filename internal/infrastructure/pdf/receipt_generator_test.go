package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

func TestRenderSaleReceipt_GeneraPDF(t *testing.T) {
	delivery := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sale := &entity.VehicleSale{
		ID: "0b6f5c2e-1111-4a2b-9c3d-000000000001",
		Vehicle: entity.VehicleDetails{
			Make: "Toyota", Model: "Corolla", Year: 2022, VIN: "1HGCM82633A004352",
			Price: decimal.NewFromInt(25000),
		},
		CustomerID: "cust-1",
		Customer:   &entity.UserRef{ID: "cust-1", Name: "Alice", Email: "alice@example.com", Phone: "5551234567"},
		SellerID:   "emp-1",
		Payment: entity.PaymentDetails{
			AmountPaid:    decimal.NewFromInt(1000),
			AmountDue:     decimal.NewNullDecimal(decimal.NewFromInt(24000)),
			PaymentStatus: entity.PaymentStatusPending,
			Currency:      "USD",
		},
		Status:            entity.SaleStatusPending,
		EstimatedDelivery: &delivery,
		SaleDate:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	out, err := NewReceiptGenerator("Autoventas").RenderSaleReceipt(sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "25,000.00 USD", formatAmount(decimal.NewFromInt(25000), "USD"))
	assert.Equal(t, "1,000,000.50 EUR", formatAmount(decimal.RequireFromString("1000000.5"), "EUR"))
	assert.Equal(t, "999.00", formatAmount(decimal.NewFromInt(999), ""))
	assert.Equal(t, "-1,200.00 USD", formatAmount(decimal.NewFromInt(-1200), "USD"))
}
