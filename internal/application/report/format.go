// Package report arma las líneas de texto de los listados del almacén y la vista
// dto.WarehouseReport que consumen la CLI, el PDF y el XML.
package report

import (
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const sep = "|"

// Money importe redondeado a entero (mitades lejos de cero).
func Money(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}

func join(fields ...string) string { return strings.Join(fields, sep) }

func itoa(n int) string { return strconv.Itoa(n) }

// ProductLine id|precioMax|stock, y para derivados además |factor|c1:q1#c2:q2.
func ProductLine(p *entity.Product, stock int) string {
	maxPrice := decimal.Zero
	if p.Priced {
		maxPrice = p.MaxPrice
	}
	line := join(p.ID, Money(maxPrice), itoa(stock))
	if p.IsDerived() {
		line = join(line, p.Recipe.CostFactor.String(), p.Recipe.String())
	}
	return line
}

// BatchLine producto|socio|precio|cantidad.
func BatchLine(b *entity.Batch) string {
	return join(b.Product.ID, b.Partner.ID, Money(b.UnitPrice), itoa(b.Quantity))
}

// PartnerLine id|nombre|dirección|ESTATUTO|puntos|compras|ventas|ventasPagadas.
func PartnerLine(p *entity.Partner, purchases, sales, paidSales decimal.Decimal) string {
	return join(p.ID, p.Name, p.Address, p.Tier.String(), Money(p.Points),
		Money(purchases), Money(sales), Money(paidSales))
}

// TransactionLine línea de una transacción según su tipo; current es el valor actual
// (precio a hoy para ventas pendientes, monto pagado en los demás casos).
func TransactionLine(t *entity.Transaction, current decimal.Decimal) string {
	head := []string{t.Kind.String(), itoa(t.ID), t.Partner.ID, t.Product.ID, itoa(t.Quantity)}
	switch t.Kind {
	case entity.KindPurchase:
		return join(append(head, Money(t.BaseCost), itoa(t.PaymentDate))...)
	case entity.KindSale:
		fields := append(head, Money(t.BaseCost), Money(current), itoa(t.Deadline))
		if t.Paid {
			fields = append(fields, itoa(t.PaymentDate))
		}
		return join(fields...)
	case entity.KindBreakdown:
		comps := make([]string, 0, len(t.Components))
		for _, c := range t.Components {
			comps = append(comps, c.Product.ID+":"+itoa(c.Quantity)+":"+Money(c.Value()))
		}
		return join(append(head, Money(t.BaseCost), Money(t.PaidAmount), itoa(t.Date), strings.Join(comps, "#"))...)
	}
	return join(head...)
}

// NotificationLine TIPO|producto|precio.
func NotificationLine(n entity.Notification) string {
	return join(string(n.Type), n.ProductID, Money(n.UnitPrice))
}
