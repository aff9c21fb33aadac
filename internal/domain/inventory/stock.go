package inventory

import (
	"math"
	"slices"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InsertResult efectos observables de insertar un lote.
type InsertResult struct {
	NewMin        bool // el precio del lote es un nuevo mínimo estricto del producto
	Refilled      bool // el producto tenía stock 0 y ya había tenido precio antes
	PreviousTotal int  // stock del producto antes de insertar
	BatchCount    int  // lotes del producto después de insertar
}

// Stock lotes agrupados por producto (clave normalizada), ordenados con entity.CompareBatches.
type Stock struct {
	byProduct map[string][]*entity.Batch
}

// NewStock construye un inventario vacío.
func NewStock() *Stock {
	return &Stock{byProduct: make(map[string][]*entity.Batch)}
}

// Insert añade el lote manteniendo el orden y actualiza min/max del producto.
// Los lotes sin unidades no se guardan, pero sí cuentan para el precio observado.
func (s *Stock) Insert(b *entity.Batch) InsertResult {
	p := b.Product
	prev := s.Total(p)
	hadPrice := p.Priced
	newMin := p.ObservePrice(b.UnitPrice) && hadPrice

	res := InsertResult{
		NewMin:        newMin,
		Refilled:      prev == 0 && hadPrice,
		PreviousTotal: prev,
	}
	if b.Quantity > 0 {
		batches := s.byProduct[p.Key]
		i, _ := slices.BinarySearchFunc(batches, b, entity.CompareBatches)
		s.byProduct[p.Key] = slices.Insert(batches, i, b)
	}
	res.BatchCount = len(s.byProduct[p.Key])
	return res
}

// Restore reinserta un lote sin tocar min/max (los precios vienen del snapshot).
func (s *Stock) Restore(b *entity.Batch) {
	if b.Quantity <= 0 {
		return
	}
	batches := s.byProduct[b.Product.Key]
	i, _ := slices.BinarySearchFunc(batches, b, entity.CompareBatches)
	s.byProduct[b.Product.Key] = slices.Insert(batches, i, b)
}

// Consume toma hasta qty unidades empezando por el lote más barato.
// Devuelve el costo acumulado y la cantidad realmente tomada (puede ser < qty).
func (s *Stock) Consume(p *entity.Product, qty int) (decimal.Decimal, int) {
	cost := decimal.Zero
	taken := 0
	batches := s.byProduct[p.Key]
	for len(batches) > 0 && taken < qty {
		b := batches[0]
		n := b.Take(qty - taken)
		cost = cost.Add(b.UnitPrice.Mul(decimal.NewFromInt(int64(n))))
		taken += n
		if b.Empty() {
			batches = batches[1:]
		}
	}
	if len(batches) == 0 {
		delete(s.byProduct, p.Key)
	} else {
		s.byProduct[p.Key] = batches
	}
	return cost, taken
}

// Total stock del producto (suma de cantidades de sus lotes), saturada en math.MaxInt.
func (s *Stock) Total(p *entity.Product) int {
	total := 0
	for _, b := range s.byProduct[p.Key] {
		if b.Quantity > math.MaxInt-total {
			return math.MaxInt
		}
		total += b.Quantity
	}
	return total
}

// CheapestPrice precio del lote más barato; ok=false si no hay lotes.
func (s *Stock) CheapestPrice(p *entity.Product) (decimal.Decimal, bool) {
	batches := s.byProduct[p.Key]
	if len(batches) == 0 {
		return decimal.Zero, false
	}
	return batches[0].UnitPrice, true
}

// Batches lotes del producto en orden (copia).
func (s *Stock) Batches(p *entity.Product) []*entity.Batch {
	return slices.Clone(s.byProduct[p.Key])
}

// All todos los lotes en orden de listado.
func (s *Stock) All() []*entity.Batch {
	var out []*entity.Batch
	for _, batches := range s.byProduct {
		out = append(out, batches...)
	}
	slices.SortStableFunc(out, func(a, b *entity.Batch) int {
		if c := entity.CompareBatches(a, b); c != 0 {
			return c
		}
		switch {
		case a.Product.Key < b.Product.Key:
			return -1
		case a.Product.Key > b.Product.Key:
			return 1
		}
		return 0
	})
	return out
}

// Filter lotes que cumplen keep, en orden de listado.
func (s *Stock) Filter(keep func(*entity.Batch) bool) []*entity.Batch {
	var out []*entity.Batch
	for _, b := range s.All() {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
