// Package pdf implementa el comprobante de venta de vehículo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del concesionario  │  N° Venta + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email + Tel                               │
//	│  VENDEDOR: Nombre + Email                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VEHÍCULO: Marca | Modelo | Año | VIN | Precio               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGO: Pagado / Pendiente / Estado                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la venta + estado logístico         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoventas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa sales.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct {
	issuer string
}

// NewReceiptGenerator construye el generador; issuer es el nombre que encabeza el comprobante.
func NewReceiptGenerator(issuer string) *ReceiptGenerator {
	return &ReceiptGenerator{issuer: issuer}
}

// RenderSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderSaleReceipt(sale *entity.VehicleSale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta "+sale.ID, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.issuer, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("CLIENTE", sale.Customer, sale.CustomerID, true))
	m.AddRows(partyRow("VENDEDOR", sale.Seller, sale.SellerID, false))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(vehicleHeaderRow())
	m.AddRows(vehicleRow(sale))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(paymentRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: concesionario (izq) y N° de venta + fecha (der).
func headerRow(issuer string, sale *entity.VehicleSale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta de vehículo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VENTA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.ID, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.SaleDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: datos de cliente o vendedor; si la referencia ya no existe se muestra el id.
func partyRow(title string, ref *entity.UserRef, fallbackID string, withPhone bool) core.Row {
	name, detail := fallbackID, "—"
	if ref != nil {
		name = ref.Name
		detail = "Email: " + nonEmpty(ref.Email, "—")
		if withPhone {
			detail += "   |   Tel: " + nonEmpty(ref.Phone, "—")
		}
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// vehicleHeaderRow: cabecera de la tabla del vehículo.
func vehicleHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Marca", 2, align.Left),
		h("Modelo", 2, align.Left),
		h("Año", 1, align.Center),
		h("VIN", 4, align.Left),
		h("Precio", 3, align.Right),
	)
}

func vehicleRow(sale *entity.VehicleSale) core.Row {
	v := sale.Vehicle
	return row.New(7).Add(
		col.New(2).Add(text.New(v.Make, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(v.Model, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", v.Year), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New(v.VIN, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(
			formatAmount(v.Price, sale.Payment.Currency),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// paymentRow: bloque de pago alineado a la derecha.
func paymentRow(sale *entity.VehicleSale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	p := sale.Payment
	due := "—"
	if p.AmountDue.Valid {
		due = formatAmount(p.AmountDue.Decimal, p.Currency)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Pagado:"),
			label("Pendiente:"),
			label("Estado del pago:"),
		),
		col.New(3).Add(
			value(formatAmount(p.AmountPaid, p.Currency)),
			value(due),
			text.New(string(p.PaymentStatus), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// footerRow: QR con el id de la venta y estado logístico.
func footerRow(sale *entity.VehicleSale) core.Row {
	delivery := "sin fecha estimada"
	if sale.EstimatedDelivery != nil {
		delivery = sale.EstimatedDelivery.Format("02/01/2006")
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(sale.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Estado de la venta: "+string(sale.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary,
			}),
			text.New("Entrega estimada: "+delivery, props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
			text.New("Conserve este documento como soporte de su compra.", props.Text{
				Size: 6.5, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount devuelve el importe con dos decimales, separador de miles y código de moneda.
// Ej: 25000 USD → "25,000.00 USD"
func formatAmount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	out := sign + groupThousands(intPart) + frac
	if currency != "" {
		out += " " + currency
	}
	return out
}

// groupThousands inserta comas de miles en un entero sin signo.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
