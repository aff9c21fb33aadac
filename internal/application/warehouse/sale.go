package warehouse

import (
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// RegisterSale venta a crédito de qty unidades con fecha límite deadline.
// Si el stock directo no alcanza se fabrica el faltante (transitivamente). Si ni así alcanza
// devuelve *domain.InsufficientProductsError sin tocar el inventario.
func (uc *WarehouseUseCase) RegisterSale(partnerID, productID string, qty, deadline int) (*entity.Transaction, error) {
	if !domain.ValidQuantity(qty) {
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
	if err := uc.resolver.EnsureAvailable(prod, qty); err != nil {
		uc.log.Debug().Err(err).Str("product", prod.ID).Int("qty", qty).Msg("venta rechazada")
		return nil, err
	}

	baseCost := uc.resolver.Consume(prod, qty)
	tx := uc.ledger.Append(func(id int) *entity.Transaction {
		return entity.NewSale(id, prod, p, qty, baseCost, uc.date, deadline)
	})

	uc.log.Info().
		Int("tx", tx.ID).
		Str("partner", p.ID).
		Str("product", prod.ID).
		Int("qty", qty).
		Int("deadline", deadline).
		Str("base", baseCost.String()).
		Msg("venta registrada")
	return tx, nil
}

// ReceivePayment cobra una venta a crédito a la fecha actual.
// No hace nada (monto cero) si la transacción no es una venta o ya está pagada.
// Pago antes de la fecha límite: suma 10 puntos por unidad monetaria pagada y promociona.
// Pago en o después de la fecha límite: baja un estatuto y no suma puntos.
func (uc *WarehouseUseCase) ReceivePayment(transactionID int) (decimal.Decimal, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	tx, err := uc.ledger.Get(transactionID)
	if err != nil {
		return decimal.Zero, err
	}
	if !tx.IsSale() || tx.Paid {
		return decimal.Zero, nil
	}

	amount := uc.salePrice(tx)
	tx.MarkPaid(amount, uc.date)
	uc.ledger.Credit(amount)

	p := tx.Partner
	before := p.Tier
	if uc.date < tx.Deadline {
		partner.AwardPoints(p, amount)
	} else {
		partner.PenalizeLatePayment(p)
	}

	uc.log.Info().
		Int("tx", tx.ID).
		Str("partner", p.ID).
		Str("amount", amount.String()).
		Stringer("tier_before", before).
		Stringer("tier", p.Tier).
		Msg("pago recibido")
	return amount, nil
}

// salePrice importe de la venta: fijo si ya se pagó, si no calculado a la fecha actual
// con el estatuto actual del socio.
func (uc *WarehouseUseCase) salePrice(tx *entity.Transaction) decimal.Decimal {
	if tx.Paid {
		return tx.PaidAmount
	}
	return partner.Price(tx.Partner.Tier, tx.BaseCost, uc.date, tx.Deadline, tx.Product.PaymentFactor())
}

// CurrentPrice importe actual de una transacción: pagado para ventas cobradas, calculado a hoy
// para ventas pendientes, y el monto pagado para compras y desagregaciones.
func (uc *WarehouseUseCase) CurrentPrice(transactionID int) (decimal.Decimal, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	tx, err := uc.ledger.Get(transactionID)
	if err != nil {
		return decimal.Zero, err
	}
	return uc.currentPrice(tx), nil
}

func (uc *WarehouseUseCase) currentPrice(tx *entity.Transaction) decimal.Decimal {
	if tx.IsSale() {
		return uc.salePrice(tx)
	}
	return tx.PaidAmount
}
