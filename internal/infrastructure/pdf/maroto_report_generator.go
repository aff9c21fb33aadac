// Package pdf genera el reporte de inventario y saldos del almacén.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Almacén + fecha  │  Saldo disponible / contable     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTOS: Id | Precio máx | Stock | Receta                 │
//	│  LOTES: Producto | Socio | Precio | Cantidad                 │
//	│  SOCIOS: Id | Estatuto | Puntos | Compras | Ventas | Pagado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: digest del XML + QR                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/almacen-ggc/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el reporte del almacén con Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza cada documento.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	return &MarotoReportGenerator{title: title}
}

// GenerateStockReport genera el PDF y devuelve sus bytes. Si digest no está vacío se imprime
// junto con su código QR para cotejarlo con el XML exportado.
func (g *MarotoReportGenerator) GenerateStockReport(_ context.Context, r *dto.WarehouseReport, digest string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("PRODUCTOS"))
	m.AddRows(tableHeaderRow(
		headerCol{"Producto", 4, align.Left},
		headerCol{"Precio máx.", 2, align.Right},
		headerCol{"Stock", 2, align.Right},
		headerCol{"Receta", 4, align.Left},
	))
	for _, p := range r.Products {
		recipe := "-"
		if p.Derived {
			recipe = p.CostFactor.String() + " · " + p.Recipe
		}
		m.AddRows(detailRow(
			cell{p.ID, 4, align.Left},
			cell{"$" + formatMoney(p.MaxPrice), 2, align.Right},
			cell{strconv.Itoa(p.Stock), 2, align.Right},
			cell{recipe, 4, align.Left},
		))
	}

	m.AddRows(sectionRow("LOTES"))
	m.AddRows(tableHeaderRow(
		headerCol{"Producto", 4, align.Left},
		headerCol{"Socio", 4, align.Left},
		headerCol{"Precio", 2, align.Right},
		headerCol{"Cant.", 2, align.Right},
	))
	for _, b := range r.Batches {
		m.AddRows(detailRow(
			cell{b.ProductID, 4, align.Left},
			cell{b.PartnerID, 4, align.Left},
			cell{"$" + formatMoney(b.UnitPrice), 2, align.Right},
			cell{strconv.Itoa(b.Quantity), 2, align.Right},
		))
	}

	m.AddRows(sectionRow("SOCIOS"))
	m.AddRows(tableHeaderRow(
		headerCol{"Socio", 3, align.Left},
		headerCol{"Estatuto", 2, align.Center},
		headerCol{"Puntos", 1, align.Right},
		headerCol{"Compras", 2, align.Right},
		headerCol{"Ventas", 2, align.Right},
		headerCol{"Pagado", 2, align.Right},
	))
	for _, p := range r.Partners {
		m.AddRows(detailRow(
			cell{p.ID, 3, align.Left},
			cell{p.Tier, 2, align.Center},
			cell{p.Points.Round(0).StringFixed(0), 1, align.Right},
			cell{"$" + formatMoney(p.Purchases), 2, align.Right},
			cell{"$" + formatMoney(p.Sales), 2, align.Right},
			cell{"$" + formatMoney(p.PaidSales), 2, align.Right},
		))
	}

	if digest != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(digestRows(digest)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y fecha (izq), saldos (der).
func (g *MarotoReportGenerator) headerRow(r *dto.WarehouseReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Fecha: día %d", r.Date), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Saldo disponible: $"+formatMoney(r.AvailableBalance), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Saldo contable: $"+formatMoney(r.AccountingBalance), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

type cell struct {
	value string
	size  int
	align align.Type
}

func tableHeaderRow(cols ...headerCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		out = append(out, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(out...)
}

func detailRow(cells ...cell) core.Row {
	out := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		out = append(out, col.New(c.size).Add(text.New(c.value, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(5).Add(out...)
}

// digestRows: digest partido + QR.
func digestRows(digest string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Digest BLAKE2b-256 del XML canónico:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)),
	}
	for _, chunk := range splitEvery(digest, 64) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	rows = append(rows, row.New(40).Add(
		col.New(4).Add(code.NewQr(digest, props.Rect{Percent: 95, Center: true})),
		col.New(8),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a entero e inserta puntos de miles.
// Ej: 25000 → "25.000", -1234567 → "-1.234.567"
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
