package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProduct_ObservePrice(t *testing.T) {
	p := entity.NewProduct("X")
	assert.False(t, p.Priced)

	assert.True(t, p.ObservePrice(d("5")), "el primer precio cuenta como mínimo")
	assert.True(t, p.Priced)
	assert.True(t, p.MinPrice.Equal(d("5")))
	assert.True(t, p.MaxPrice.Equal(d("5")))

	assert.False(t, p.ObservePrice(d("8")), "un precio mayor no es nuevo mínimo")
	assert.True(t, p.MaxPrice.Equal(d("8")))

	assert.False(t, p.ObservePrice(d("5")), "igualar el mínimo no es mínimo estricto")
	assert.True(t, p.ObservePrice(d("3")))
	assert.True(t, p.MinPrice.Equal(d("3")))
	assert.True(t, p.MaxPrice.Equal(d("8")), "el máximo nunca baja")
}

func TestProduct_PaymentFactor(t *testing.T) {
	a := entity.NewProduct("A")
	assert.Equal(t, entity.SimplePaymentFactor, a.PaymentFactor())

	r := entity.NewRecipe(d("0.1"), []entity.Component{{Product: a, Quantity: 2}})
	x := entity.NewDerivedProduct("X", r)
	assert.True(t, x.IsDerived())
	assert.Equal(t, entity.DerivedPaymentFactor, x.PaymentFactor())
	assert.Equal(t, "A:2", r.String())
}

func TestRecipe_CopiesComponents(t *testing.T) {
	a := entity.NewProduct("A")
	b := entity.NewProduct("B")
	comps := []entity.Component{{Product: a, Quantity: 1}, {Product: b, Quantity: 3}}
	r := entity.NewRecipe(d("0"), comps)
	comps[0].Quantity = 99

	assert.Equal(t, 1, r.Components[0].Quantity, "la receta no debe compartir el slice")
	assert.Equal(t, "A:1#B:3", r.String())
}

func TestCompareBatches(t *testing.T) {
	prod := entity.NewProduct("X")
	ana := entity.NewPartner("Ana", "", "")
	bea := entity.NewPartner("bea", "", "")

	cheap := &entity.Batch{Product: prod, Partner: bea, UnitPrice: d("2"), Quantity: 9}
	pricey := &entity.Batch{Product: prod, Partner: ana, UnitPrice: d("3"), Quantity: 1}
	assert.Negative(t, entity.CompareBatches(cheap, pricey), "primero por precio")

	first := &entity.Batch{Product: prod, Partner: ana, UnitPrice: d("3"), Quantity: 5}
	second := &entity.Batch{Product: prod, Partner: bea, UnitPrice: d("3"), Quantity: 1}
	assert.Negative(t, entity.CompareBatches(first, second), "después por socio")

	small := &entity.Batch{Product: prod, Partner: ana, UnitPrice: d("3"), Quantity: 1}
	assert.Negative(t, entity.CompareBatches(small, first), "por último por cantidad")
}

func TestTransaction_MarkPaidOnce(t *testing.T) {
	prod := entity.NewProduct("X")
	p := entity.NewPartner("P", "", "")
	tx := entity.NewSale(0, prod, p, 1, d("10"), 0, 5)

	assert.True(t, tx.MarkPaid(d("9"), 2))
	assert.False(t, tx.MarkPaid(d("50"), 7), "no se paga dos veces")
	assert.True(t, tx.PaidAmount.Equal(d("9")))
	assert.Equal(t, 2, tx.PaymentDate)
}

func TestNewBreakdown_PaidAmountNeverNegative(t *testing.T) {
	prod := entity.NewProduct("X")
	p := entity.NewPartner("P", "", "")
	tx := entity.NewBreakdown(0, prod, p, 1, d("-12"), 0, nil)
	assert.True(t, tx.Paid)
	assert.True(t, tx.PaidAmount.IsZero())
}

func TestTier_Parse(t *testing.T) {
	for _, tier := range []entity.Tier{entity.TierNormal, entity.TierSelection, entity.TierElite} {
		got, ok := entity.ParseTier(tier.String())
		assert.True(t, ok)
		assert.Equal(t, tier, got)
	}
	_, ok := entity.ParseTier("GOLD")
	assert.False(t, ok)
}

func TestPartner_Notifications(t *testing.T) {
	p := entity.NewPartner("P", "", "")
	n1 := entity.Notification{Type: entity.NotificationNew, ProductID: "X", UnitPrice: d("5")}
	n2 := entity.Notification{Type: entity.NotificationBargain, ProductID: "X", UnitPrice: d("3")}
	p.Notify(n1)
	p.Notify(n2)

	assert.Len(t, p.PendingNotifications(), 2)
	assert.Equal(t, []entity.Notification{n1, n2}, p.DrainNotifications(), "orden FIFO")
	assert.Empty(t, p.DrainNotifications(), "drenar vacía la cola")

	assert.True(t, p.ToggleMuted("x"))
	assert.True(t, p.IsMuted("x"))
	assert.False(t, p.ToggleMuted("x"))
	assert.False(t, p.IsMuted("x"))
}
