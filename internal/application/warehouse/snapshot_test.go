package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

// populated almacén con productos derivados, ventas pagadas y pendientes,
// una desagregación, notificaciones pendientes y un producto silenciado.
func populated(t *testing.T) *warehouse.WarehouseUseCase {
	t.Helper()
	uc := newUC(t)
	mustPartner(t, uc, "Ana", "Bea")
	withDerived(t, uc)
	mustBuy(t, uc, "Ana", "A", 10, "10")
	mustBuy(t, uc, "Bea", "A", 3, "7")
	mustBuy(t, uc, "Bea", "B", 4, "5")
	mustBuy(t, uc, "Ana", "AB", 1, "40")

	_, err := uc.ToggleNotifications("Bea", "A")
	require.NoError(t, err)

	sale, err := uc.RegisterSale("Bea", "AB", 2, 8)
	require.NoError(t, err)
	_, err = uc.RegisterSale("Ana", "A", 1, 2)
	require.NoError(t, err)
	require.NoError(t, uc.AdvanceDate(3))
	_, err = uc.ReceivePayment(sale.ID)
	require.NoError(t, err)

	mustBuy(t, uc, "Ana", "AB", 1, "30")
	_, err = uc.RegisterBreakdown("Bea", "AB", 1)
	require.NoError(t, err)
	return uc
}

func TestSnapshot_RoundTrip(t *testing.T) {
	src := populated(t)
	snap := src.Snapshot()

	dst := newUC(t)
	require.NoError(t, dst.Restore(snap))

	assert.Equal(t, snap, dst.Snapshot(), "restaurar y volver a tomar el snapshot da lo mismo")
	assert.Equal(t, src.Date(), dst.Date())
	assert.True(t, src.AvailableBalance().Equal(dst.AvailableBalance()))
	assert.True(t, src.AccountingBalance().Equal(dst.AccountingBalance()))
	for _, p := range src.Products() {
		want, err := src.ProductTotalQuantity(p.ID)
		require.NoError(t, err)
		got, err := dst.ProductTotalQuantity(p.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got, "stock de %s", p.ID)
	}

	// los ids siguen la numeración del origen
	mustBuy(t, dst, "Ana", "B", 1, "1")
	txs := dst.Transactions()
	assert.Equal(t, snap.NextTransactionID, txs[len(txs)-1].ID)

	// listas del socio reconstruidas desde las transacciones
	ana, err := dst.Partner("ana")
	require.NoError(t, err)
	srcAna, err := src.Partner("ana")
	require.NoError(t, err)
	assert.Equal(t, srcAna.Purchases, ana.Purchases)
	assert.Equal(t, srcAna.Sales, ana.Sales)

	bea, err := dst.Partner("bea")
	require.NoError(t, err)
	assert.True(t, bea.IsMuted("a"))
	assert.Len(t, bea.Breakdowns, 1)
	assert.NotEmpty(t, bea.PendingNotifications(), "las notificaciones pendientes sobreviven")
}

func TestRestore_CorruptLeavesStateUntouched(t *testing.T) {
	uc := populated(t)
	before := uc.Snapshot()

	bad := uc.Snapshot()
	bad.Transactions[0].PartnerID = "nadie"
	err := uc.Restore(bad)
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	assert.ErrorIs(t, err, domain.ErrUnknownPartner)
	assert.Equal(t, before, uc.Snapshot())

	// A pasa a necesitar AB, que a su vez necesita A
	cyclic := uc.Snapshot()
	for i := range cyclic.Products {
		if cyclic.Products[i].ID == "A" {
			cyclic.Products[i].Derived = true
			cyclic.Products[i].CostFactor = "0"
			cyclic.Products[i].Components = []entity.ComponentRecord{{ProductID: "AB", Quantity: 1}}
		}
	}
	err = uc.Restore(cyclic)
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	assert.ErrorIs(t, err, domain.ErrCyclicRecipe)
	assert.Equal(t, before, uc.Snapshot())

	assert.ErrorIs(t, uc.Restore(nil), domain.ErrCorruptSnapshot)
}
