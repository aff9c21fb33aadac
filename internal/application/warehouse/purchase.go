package warehouse

import (
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RegisterPurchase el almacén compra qty unidades al socio a unitPrice.
// Crea el lote, registra la compra (pagada en el acto) y descuenta el saldo disponible.
// Notificaciones:
//   - NEW si el producto estaba agotado y ya había tenido stock (reposición);
//   - BARGAIN si tras insertar hay más de un lote y el precio es un nuevo mínimo estricto.
func (uc *WarehouseUseCase) RegisterPurchase(partnerID, productID string, qty int, unitPrice decimal.Decimal) (*entity.Transaction, error) {
	if !domain.ValidQuantity(qty) || unitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return nil, err
	}
	prod, err := uc.catalog.MustGet(productID)
	if err != nil {
		return nil, err
	}

	batch := &entity.Batch{Product: prod, Partner: p, UnitPrice: unitPrice, Quantity: qty}
	res := uc.stock.Insert(batch)

	tx := uc.ledger.Append(func(id int) *entity.Transaction {
		return entity.NewPurchase(id, prod, p, qty, unitPrice, uc.date)
	})
	uc.ledger.Debit(tx.BaseCost)

	if res.Refilled {
		n := uc.dispatcher.Dispatch(entity.NotificationNew, batch)
		uc.log.Debug().Str("product", prod.ID).Int("recipients", n).Msg("notificación NEW")
	}
	if res.NewMin && res.BatchCount > 1 {
		n := uc.dispatcher.Dispatch(entity.NotificationBargain, batch)
		uc.log.Debug().Str("product", prod.ID).Int("recipients", n).Msg("notificación BARGAIN")
	}

	uc.log.Info().
		Int("tx", tx.ID).
		Str("partner", p.ID).
		Str("product", prod.ID).
		Int("qty", qty).
		Int("previous_stock", res.PreviousTotal).
		Str("total", tx.BaseCost.String()).
		Msg("compra registrada")
	return tx, nil
}
