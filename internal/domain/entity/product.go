package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Factores de pago: días entre periodos de descuento/penalización de una venta a crédito.
const (
	SimplePaymentFactor  = 5
	DerivedPaymentFactor = 3
)

// Product representa un producto del almacén. Si Recipe != nil es un producto derivado
// (fabricable a partir de otros productos).
// MinPrice/MaxPrice son los precios unitarios observados en lotes; solo son válidos si Priced.
type Product struct {
	ID       string // id tal como se registró (para mostrar)
	Key      string // id normalizado (clave única)
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Priced   bool
	Recipe   *Recipe
}

// NewProduct crea un producto simple.
func NewProduct(id string) *Product {
	return &Product{ID: id, Key: NormalizeKey(id)}
}

// NewDerivedProduct crea un producto derivado con su receta.
func NewDerivedProduct(id string, recipe *Recipe) *Product {
	return &Product{ID: id, Key: NormalizeKey(id), Recipe: recipe}
}

// IsDerived indica si el producto tiene receta.
func (p *Product) IsDerived() bool { return p.Recipe != nil }

// PaymentFactor 5 para productos simples, 3 para derivados.
func (p *Product) PaymentFactor() int {
	if p.IsDerived() {
		return DerivedPaymentFactor
	}
	return SimplePaymentFactor
}

// ObservePrice registra el precio de un lote nuevo. El máximo solo sube y el mínimo solo baja.
// Devuelve true si el precio fija un nuevo mínimo estricto (o es el primer precio).
func (p *Product) ObservePrice(price decimal.Decimal) bool {
	if !p.Priced {
		p.MinPrice, p.MaxPrice, p.Priced = price, price, true
		return true
	}
	if price.GreaterThan(p.MaxPrice) {
		p.MaxPrice = price
	}
	if price.LessThan(p.MinPrice) {
		p.MinPrice = price
		return true
	}
	return false
}

// Component entrada de receta: cantidad de Product necesaria por unidad del derivado.
type Component struct {
	Product  *Product
	Quantity int
}

// Recipe receta inmutable de un producto derivado. El orden de Components es el de declaración.
type Recipe struct {
	Components []Component
	CostFactor decimal.Decimal
}

// NewRecipe copia los componentes para que la receta no se pueda modificar desde fuera.
func NewRecipe(costFactor decimal.Decimal, components []Component) *Recipe {
	cs := make([]Component, len(components))
	copy(cs, components)
	return &Recipe{Components: cs, CostFactor: costFactor}
}

// String formato "id1:q1#id2:q2".
func (r *Recipe) String() string {
	parts := make([]string, 0, len(r.Components))
	for _, c := range r.Components {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Product.ID, c.Quantity))
	}
	return strings.Join(parts, "#")
}
