package inventory

import (
	"math"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Resolver resuelve y fabrica productos derivados a partir de sus recetas.
//
// Política del factor de costo: cada nivel derivado aplica su propio factor una sola vez
// sobre el costo de los componentes de las unidades que fabrica:
//
//	costo(fabricar q de P) = (1 + factor(P)) × Σ costo(componentes)
//
// donde un componente derivado sin stock suficiente se valora con la misma regla.
type Resolver struct {
	stock *Stock
}

// NewResolver construye el resolvedor sobre el inventario dado.
func NewResolver(stock *Stock) *Resolver {
	return &Resolver{stock: stock}
}

// EnsureAvailable verifica (sin modificar el inventario) que se puedan obtener qty unidades
// del producto, directamente o fabricándolas de forma transitiva.
// Las unidades ya comprometidas en otra rama de la receta no se cuentan dos veces.
func (r *Resolver) EnsureAvailable(p *entity.Product, qty int) error {
	reserved := make(map[string]int)
	onPath := make(map[string]bool)
	return r.ensure(p, qty, reserved, onPath)
}

func (r *Resolver) ensure(p *entity.Product, qty int, reserved map[string]int, onPath map[string]bool) error {
	if onPath[p.Key] {
		return domain.ErrCyclicRecipe
	}
	available := r.stock.Total(p) - reserved[p.Key]
	if qty < 0 {
		return &domain.InsufficientProductsError{ProductID: p.ID, Requested: qty, Available: available}
	}
	take := min(available, qty)
	reserved[p.Key] += take
	shortfall := qty - take
	if shortfall == 0 {
		return nil
	}
	if !p.IsDerived() {
		return &domain.InsufficientProductsError{ProductID: p.ID, Requested: qty, Available: available}
	}

	onPath[p.Key] = true
	defer delete(onPath, p.Key)
	for _, c := range p.Recipe.Components {
		need, ok := mulQuantity(shortfall, c.Quantity)
		if !ok {
			return &domain.InsufficientProductsError{
				ProductID: c.Product.ID,
				Requested: math.MaxInt,
				Available: r.stock.Total(c.Product) - reserved[c.Product.Key],
			}
		}
		if err := r.ensure(c.Product, need, reserved, onPath); err != nil {
			return err
		}
	}
	return nil
}

// mulQuantity a×b para cantidades no negativas; ok=false si desborda int.
func mulQuantity(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}

// Consume obtiene qty unidades: primero agota el stock directo y luego fabrica el faltante.
// Devuelve el costo total (base de precio de una venta).
// Solo debe llamarse después de que EnsureAvailable haya tenido éxito.
func (r *Resolver) Consume(p *entity.Product, qty int) decimal.Decimal {
	cost, taken := r.stock.Consume(p, qty)
	if shortfall := qty - taken; shortfall > 0 {
		cost = cost.Add(r.Manufacture(p, shortfall))
	}
	return cost
}

// Manufacture fabrica qty unidades de un derivado consumiendo sus componentes en orden de receta
// y devuelve (1 + factor) × costo de los componentes.
// Un producto simple no se puede fabricar: devuelve cero.
func (r *Resolver) Manufacture(p *entity.Product, qty int) decimal.Decimal {
	if !p.IsDerived() || qty <= 0 {
		return decimal.Zero
	}
	componentCost := decimal.Zero
	for _, c := range p.Recipe.Components {
		componentCost = componentCost.Add(r.Consume(c.Product, qty*c.Quantity))
	}
	return decimal.NewFromInt(1).Add(p.Recipe.CostFactor).Mul(componentCost)
}

// Capacity máxima cantidad obtenible del producto (stock directo más fabricación).
// EnsureAvailable es monótona, así que basta una búsqueda binaria.
func (r *Resolver) Capacity(p *entity.Product, limit int) int {
	lo, hi := 0, limit
	for lo < hi {
		span := hi - lo
		mid := lo + span/2 + span%2
		if r.EnsureAvailable(p, mid) == nil {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
