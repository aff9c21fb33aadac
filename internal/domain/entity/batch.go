package entity

import "github.com/shopspring/decimal"

// Batch lote de un producto suministrado por un socio a un precio unitario.
// Es la única unidad de stock; solo Quantity cambia (al consumir) y el lote se retira en cero.
type Batch struct {
	Product   *Product
	Partner   *Partner
	UnitPrice decimal.Decimal
	Quantity  int
}

// Take descuenta hasta qty unidades y devuelve cuántas se tomaron.
func (b *Batch) Take(qty int) int {
	if qty > b.Quantity {
		qty = b.Quantity
	}
	b.Quantity -= qty
	return qty
}

// Empty indica que el lote ya no tiene unidades.
func (b *Batch) Empty() bool { return b.Quantity <= 0 }

// CompareBatches orden de todos los listados de lotes: precio unitario, id de socio normalizado, cantidad.
func CompareBatches(a, b *Batch) int {
	if c := a.UnitPrice.Cmp(b.UnitPrice); c != 0 {
		return c
	}
	switch {
	case a.Partner.Key < b.Partner.Key:
		return -1
	case a.Partner.Key > b.Partner.Key:
		return 1
	}
	return a.Quantity - b.Quantity
}
