package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	stock    *inventory.Stock
	resolver *inventory.Resolver
	partner  *entity.Partner
	a, b     *entity.Product
	ab       *entity.Product // 2A + 1B, factor 0.1
}

func newFixture() *fixture {
	f := &fixture{
		stock:   inventory.NewStock(),
		partner: entity.NewPartner("ana", "", ""),
		a:       entity.NewProduct("A"),
		b:       entity.NewProduct("B"),
	}
	f.resolver = inventory.NewResolver(f.stock)
	f.ab = entity.NewDerivedProduct("AB", entity.NewRecipe(d("0.1"), []entity.Component{
		{Product: f.a, Quantity: 2},
		{Product: f.b, Quantity: 1},
	}))
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestResolver_ManufactureCost(t *testing.T) {
	f := newFixture()
	f.stock.Insert(batch(f.a, f.partner, "10", 4))
	f.stock.Insert(batch(f.b, f.partner, "5", 2))

	require.NoError(t, f.resolver.EnsureAvailable(f.ab, 2))
	cost := f.resolver.Consume(f.ab, 2)

	// X = 4×10 + 2×5 = 50 → (1+0.1)×50 = 55
	assert.True(t, cost.Equal(d("55")), "costo esperado 55, obtenido %s", cost)
	assert.Zero(t, f.stock.Total(f.a))
	assert.Zero(t, f.stock.Total(f.b))
}

func TestResolver_DirectStockBeforeManufacturing(t *testing.T) {
	f := newFixture()
	f.stock.Insert(batch(f.ab, f.partner, "30", 1))
	f.stock.Insert(batch(f.a, f.partner, "10", 2))
	f.stock.Insert(batch(f.b, f.partner, "5", 1))

	cost := f.resolver.Consume(f.ab, 2)
	// 1 unidad directa a 30 + 1 fabricada a 1.1×25
	assert.True(t, cost.Equal(d("57.5")), "obtenido %s", cost)
}

func TestResolver_InsufficientReportsDeepestProduct(t *testing.T) {
	f := newFixture()
	f.stock.Insert(batch(f.a, f.partner, "10", 10))
	f.stock.Insert(batch(f.b, f.partner, "5", 1))

	err := f.resolver.EnsureAvailable(f.ab, 3)
	require.Error(t, err)
	var ins *domain.InsufficientProductsError
	require.True(t, errors.As(err, &ins))
	assert.Equal(t, "B", ins.ProductID)
	assert.Equal(t, 3, ins.Requested)
	assert.Equal(t, 1, ins.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientProducts)

	assert.Equal(t, 10, f.stock.Total(f.a), "verificar no consume")
}

func TestResolver_SharedComponentNotCountedTwice(t *testing.T) {
	f := newFixture()
	// AA: 1 A + 1 AB, y AB a su vez necesita 2 A.
	aa := entity.NewDerivedProduct("AA", entity.NewRecipe(d("0"), []entity.Component{
		{Product: f.a, Quantity: 1},
		{Product: f.ab, Quantity: 1},
	}))
	f.stock.Insert(batch(f.a, f.partner, "1", 2))
	f.stock.Insert(batch(f.b, f.partner, "1", 1))

	assert.Error(t, f.resolver.EnsureAvailable(aa, 1), "necesita 3 A y solo hay 2")
	f.stock.Insert(batch(f.a, f.partner, "1", 1))
	assert.NoError(t, f.resolver.EnsureAvailable(aa, 1))
}

func TestResolver_Monotonic(t *testing.T) {
	f := newFixture()
	f.stock.Insert(batch(f.a, f.partner, "10", 7))
	f.stock.Insert(batch(f.b, f.partner, "5", 5))
	f.stock.Insert(batch(f.ab, f.partner, "40", 1))

	capacity := f.resolver.Capacity(f.ab, 100)
	assert.Equal(t, 4, capacity, "1 directa + 3 fabricadas (7 A / 2)")
	for q := 0; q <= capacity; q++ {
		assert.NoError(t, f.resolver.EnsureAvailable(f.ab, q), "cantidad %d", q)
	}
	assert.Error(t, f.resolver.EnsureAvailable(f.ab, capacity+1))
}

func TestResolver_ExtremeQuantities(t *testing.T) {
	f := newFixture()
	c := entity.NewProduct("C")
	dd := entity.NewDerivedProduct("D", entity.NewRecipe(d("0"), []entity.Component{{Product: c, Quantity: 4}}))
	f.stock.Insert(batch(c, f.partner, "1", 1))

	t.Run("la multiplicación de la receta no desborda", func(t *testing.T) {
		for _, qty := range []int{1 << 62, math.MaxInt} {
			err := f.resolver.EnsureAvailable(dd, qty)
			require.Error(t, err, "cantidad %d", qty)
			var ins *domain.InsufficientProductsError
			require.True(t, errors.As(err, &ins))
			assert.Equal(t, "C", ins.ProductID)
			assert.Equal(t, 1, ins.Available)
			assert.ErrorIs(t, err, domain.ErrInsufficientProducts)
		}
		assert.Equal(t, 1, f.stock.Total(c), "verificar no consume")
	})

	t.Run("cantidad negativa", func(t *testing.T) {
		assert.ErrorIs(t, f.resolver.EnsureAvailable(c, -1), domain.ErrInsufficientProducts)
	})

	t.Run("capacidad con límite máximo", func(t *testing.T) {
		assert.Zero(t, f.resolver.Capacity(dd, math.MaxInt))
		f.stock.Insert(batch(c, f.partner, "1", 7))
		assert.Equal(t, 2, f.resolver.Capacity(dd, math.MaxInt))
		assert.Equal(t, 8, f.resolver.Capacity(c, math.MaxInt))
		assert.Equal(t, 2, f.resolver.Capacity(dd, math.MaxInt-1))
	})

	t.Run("límite máximo sobre el fixture de TestResolver_Monotonic", func(t *testing.T) {
		g := newFixture()
		g.stock.Insert(batch(g.a, g.partner, "10", 7))
		g.stock.Insert(batch(g.b, g.partner, "5", 5))
		g.stock.Insert(batch(g.ab, g.partner, "40", 1))
		assert.Equal(t, 4, g.resolver.Capacity(g.ab, math.MaxInt))
	})
}

func TestResolver_CycleDetected(t *testing.T) {
	f := newFixture()
	x := entity.NewDerivedProduct("X", nil)
	y := entity.NewDerivedProduct("Y", entity.NewRecipe(d("0"), []entity.Component{{Product: x, Quantity: 1}}))
	x.Recipe = entity.NewRecipe(d("0"), []entity.Component{{Product: y, Quantity: 1}})

	err := f.resolver.EnsureAvailable(x, 1)
	assert.ErrorIs(t, err, domain.ErrCyclicRecipe)
}

func TestResolver_NestedFactorAppliedPerLevel(t *testing.T) {
	f := newFixture()
	top := entity.NewDerivedProduct("TOP", entity.NewRecipe(d("0.5"), []entity.Component{{Product: f.ab, Quantity: 1}}))
	f.stock.Insert(batch(f.a, f.partner, "10", 2))
	f.stock.Insert(batch(f.b, f.partner, "5", 1))

	cost := f.resolver.Consume(top, 1)
	// AB = 1.1 × 25 = 27.5 ; TOP = 1.5 × 27.5 = 41.25
	assert.True(t, cost.Equal(d("41.25")), "obtenido %s", cost)
}
