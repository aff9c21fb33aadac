package warehouse

import (
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AvailableBalance dinero efectivamente movido: compras restan, cobros suman.
func (uc *WarehouseUseCase) AvailableBalance() decimal.Decimal {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ledger.Available()
}

// AccountingBalance saldo disponible más el valor a hoy de las ventas pendientes de pago.
func (uc *WarehouseUseCase) AccountingBalance() decimal.Decimal {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	total := uc.ledger.Available()
	for _, tx := range uc.ledger.Unpaid() {
		total = total.Add(uc.salePrice(tx))
	}
	return total
}

// Products productos ordenados por id normalizado.
func (uc *WarehouseUseCase) Products() []*entity.Product {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.catalog.All()
}

// Product busca un producto por id.
func (uc *WarehouseUseCase) Product(id string) (*entity.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.catalog.MustGet(id)
}

// ProductTotalQuantity stock directo del producto.
func (uc *WarehouseUseCase) ProductTotalQuantity(id string) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.catalog.MustGet(id)
	if err != nil {
		return 0, err
	}
	return uc.stock.Total(p), nil
}

// ProductCapacity unidades obtenibles del producto (stock directo más fabricación), hasta limit.
func (uc *WarehouseUseCase) ProductCapacity(id string, limit int) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.catalog.MustGet(id)
	if err != nil {
		return 0, err
	}
	return uc.resolver.Capacity(p, limit), nil
}

// Partners socios ordenados por id normalizado.
func (uc *WarehouseUseCase) Partners() []*entity.Partner {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.partners.All()
}

// Partner busca un socio por id.
func (uc *WarehouseUseCase) Partner(id string) (*entity.Partner, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.partners.MustGet(id)
}

// Batches todos los lotes (precio, socio, cantidad).
func (uc *WarehouseUseCase) Batches() []*entity.Batch {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.stock.All()
}

// BatchesByProduct lotes de un producto.
func (uc *WarehouseUseCase) BatchesByProduct(productID string) ([]*entity.Batch, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.catalog.MustGet(productID)
	if err != nil {
		return nil, err
	}
	return uc.stock.Batches(p), nil
}

// BatchesByPartner lotes suministrados por un socio.
func (uc *WarehouseUseCase) BatchesByPartner(partnerID string) ([]*entity.Batch, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return nil, err
	}
	return uc.stock.Filter(func(b *entity.Batch) bool { return b.Partner == p }), nil
}

// BatchesUnderPrice lotes con precio unitario estrictamente menor que limit.
func (uc *WarehouseUseCase) BatchesUnderPrice(limit decimal.Decimal) []*entity.Batch {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.stock.Filter(func(b *entity.Batch) bool { return b.UnitPrice.LessThan(limit) })
}

// MostStockedBatch lote con más unidades (el primero en orden de listado si hay empate).
func (uc *WarehouseUseCase) MostStockedBatch() (*entity.Batch, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	var best *entity.Batch
	for _, b := range uc.stock.All() {
		if best == nil || b.Quantity > best.Quantity {
			best = b
		}
	}
	return best, best != nil
}

// Transaction transacción por id.
func (uc *WarehouseUseCase) Transaction(id int) (*entity.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ledger.Get(id)
}

// Transactions todas las transacciones en orden de creación.
func (uc *WarehouseUseCase) Transactions() []*entity.Transaction {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ledger.All()
}

// PartnerPurchases compras al socio en orden de creación.
func (uc *WarehouseUseCase) PartnerPurchases(partnerID string) ([]*entity.Transaction, error) {
	return uc.partnerTransactions(partnerID, func(t *entity.Transaction) bool {
		return t.Kind == entity.KindPurchase
	})
}

// PartnerSales ventas y desagregaciones del socio en orden de creación.
func (uc *WarehouseUseCase) PartnerSales(partnerID string) ([]*entity.Transaction, error) {
	return uc.partnerTransactions(partnerID, func(t *entity.Transaction) bool {
		return t.Kind == entity.KindSale || t.Kind == entity.KindBreakdown
	})
}

// PaymentsByPartner ventas a crédito ya cobradas al socio.
func (uc *WarehouseUseCase) PaymentsByPartner(partnerID string) ([]*entity.Transaction, error) {
	return uc.partnerTransactions(partnerID, func(t *entity.Transaction) bool {
		return t.IsSale() && t.Paid
	})
}

func (uc *WarehouseUseCase) partnerTransactions(partnerID string, keep func(*entity.Transaction) bool) ([]*entity.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return nil, err
	}
	var out []*entity.Transaction
	for _, t := range uc.ledger.All() {
		if t.Partner == p && keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// PartnerTotals valor de compras, ventas (a hoy) y ventas cobradas de un socio.
type PartnerTotals struct {
	Purchases decimal.Decimal
	Sales     decimal.Decimal
	PaidSales decimal.Decimal
}

// PartnerTotals calcula los totales del socio para los listados.
func (uc *WarehouseUseCase) PartnerTotals(partnerID string) (PartnerTotals, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	totals := PartnerTotals{Purchases: decimal.Zero, Sales: decimal.Zero, PaidSales: decimal.Zero}
	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return totals, err
	}
	for _, t := range uc.ledger.All() {
		if t.Partner != p {
			continue
		}
		switch t.Kind {
		case entity.KindPurchase:
			totals.Purchases = totals.Purchases.Add(t.BaseCost)
		case entity.KindSale:
			totals.Sales = totals.Sales.Add(uc.salePrice(t))
			if t.Paid {
				totals.PaidSales = totals.PaidSales.Add(t.PaidAmount)
			}
		}
	}
	return totals, nil
}
