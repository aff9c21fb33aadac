package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/application/report"
	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestMoney_RoundsHalfAwayFromZero(t *testing.T) {
	cases := map[string]string{
		"0":     "0",
		"2.4":   "2",
		"2.5":   "3",
		"-2.5":  "-3",
		"49.49": "49",
		"1000":  "1000",
	}
	for in, want := range cases {
		assert.Equal(t, want, report.Money(d(in)), "Money(%s)", in)
	}
}

func TestProductLine(t *testing.T) {
	a := entity.NewProduct("A")
	assert.Equal(t, "A|0|0", report.ProductLine(a, 0), "sin precio muestra 0")

	a.ObservePrice(d("10.6"))
	assert.Equal(t, "A|11|7", report.ProductLine(a, 7))

	b := entity.NewProduct("B")
	ab := entity.NewDerivedProduct("AB", entity.NewRecipe(d("0.1"), []entity.Component{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
	}))
	assert.Equal(t, "AB|0|0|0.1|A:2#B:1", report.ProductLine(ab, 0))
}

func TestBatchAndPartnerLines(t *testing.T) {
	p := entity.NewPartner("P1", "Ana", "Rua 1")
	b := &entity.Batch{Product: entity.NewProduct("A"), Partner: p, UnitPrice: d("4.5"), Quantity: 3}
	assert.Equal(t, "A|P1|5|3", report.BatchLine(b))

	p.Points = d("225")
	assert.Equal(t, "P1|Ana|Rua 1|NORMAL|225|100|50|20",
		report.PartnerLine(p, d("100"), d("50"), d("20")))
}

func TestTransactionLine(t *testing.T) {
	p := entity.NewPartner("P1", "Ana", "Rua 1")
	a := entity.NewProduct("A")
	b := entity.NewProduct("B")
	ab := entity.NewDerivedProduct("AB", entity.NewRecipe(d("0.1"), []entity.Component{
		{Product: a, Quantity: 2},
		{Product: b, Quantity: 1},
	}))

	t.Run("compra", func(t *testing.T) {
		tx := entity.NewPurchase(0, a, p, 10, d("5"), 3)
		assert.Equal(t, "COMPRA|0|P1|A|10|50|3", report.TransactionLine(tx, tx.PaidAmount))
	})

	t.Run("venta pendiente y pagada", func(t *testing.T) {
		tx := entity.NewSale(1, a, p, 2, d("20"), 0, 5)
		assert.Equal(t, "VENDA|1|P1|A|2|20|18|5", report.TransactionLine(tx, d("18")))

		require.True(t, tx.MarkPaid(d("18"), 4))
		assert.Equal(t, "VENDA|1|P1|A|2|20|18|5|4", report.TransactionLine(tx, tx.PaidAmount))
	})

	t.Run("desagregación", func(t *testing.T) {
		comps := []entity.BreakdownComponent{
			{Product: a, Quantity: 2, UnitPrice: d("10")},
			{Product: b, Quantity: 1, UnitPrice: d("5")},
		}
		tx := entity.NewBreakdown(2, ab, p, 1, d("-2.5"), 6, comps)
		assert.Equal(t, "DESAGREGAÇÃO|2|P1|AB|1|-3|0|6|A:2:20#B:1:5", report.TransactionLine(tx, tx.PaidAmount))
	})
}

func TestNotificationLine(t *testing.T) {
	n := entity.Notification{Type: entity.NotificationBargain, ProductID: "A", UnitPrice: d("3")}
	assert.Equal(t, "BARGAIN|A|3", report.NotificationLine(n))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte completo
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild(t *testing.T) {
	uc := warehouse.NewWarehouseUseCase(nil)
	_, err := uc.RegisterPartner("P1", "Ana", "Rua 1")
	require.NoError(t, err)
	_, err = uc.RegisterProduct("A")
	require.NoError(t, err)
	_, err = uc.RegisterProduct("B")
	require.NoError(t, err)
	_, err = uc.RegisterDerivedProduct("AB", d("0.1"), []catalog.ComponentInput{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	})
	require.NoError(t, err)
	_, err = uc.RegisterPurchase("P1", "A", 10, d("10"))
	require.NoError(t, err)
	_, err = uc.RegisterPurchase("P1", "B", 10, d("5"))
	require.NoError(t, err)
	_, err = uc.RegisterSale("P1", "AB", 1, 5)
	require.NoError(t, err)

	r, err := report.Build(uc)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Date)
	assert.True(t, r.AvailableBalance.Equal(d("-150")))
	assert.True(t, r.AccountingBalance.Equal(r.AvailableBalance.Add(r.Transactions[2].Current)))

	require.Len(t, r.Products, 3)
	assert.Equal(t, "A|10|8", r.Products[0].Line)
	assert.Equal(t, "AB|0|0|0.1|A:2#B:1", r.Products[1].Line)
	assert.True(t, r.Products[1].Derived)

	require.Len(t, r.Batches, 2)
	assert.Equal(t, "B|P1|5|9", r.Batches[0].Line)
	assert.Equal(t, "A|P1|10|8", r.Batches[1].Line)

	require.Len(t, r.Partners, 1)
	assert.Equal(t, "P1", r.Partners[0].ID)

	require.Len(t, r.Transactions, 3)
	assert.Equal(t, "COMPRA|0|P1|A|10|100|0", r.Transactions[0].Line)
	assert.Equal(t, "VENDA", r.Transactions[2].Kind)
	assert.False(t, r.Transactions[2].Paid)
}
