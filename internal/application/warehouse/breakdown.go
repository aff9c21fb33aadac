package warehouse

import (
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// RegisterBreakdown el socio devuelve qty unidades de un derivado para desagregarlas en sus
// componentes. Nunca fabrica: exige qty unidades en stock directo.
//
// Cada componente se valora al precio del lote más barato existente o, si no hay lotes, al
// precio máximo histórico (cero si nunca tuvo precio). Con X = Σ qty×cantidad×precio:
//
//	BaseCost = -factor × X   (negativo: el almacén le debe al socio)
//	pagado   = max(0, BaseCost)
//
// Para un producto simple no hace nada y devuelve (nil, nil).
func (uc *WarehouseUseCase) RegisterBreakdown(partnerID, productID string, qty int) (*entity.Transaction, error) {
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
	if !prod.IsDerived() {
		uc.log.Debug().Str("product", prod.ID).Msg("desagregación ignorada: producto simple")
		return nil, nil
	}
	if available := uc.stock.Total(prod); available < qty {
		return nil, &domain.InsufficientProductsError{ProductID: prod.ID, Requested: qty, Available: available}
	}

	// Valoración antes de consumir/insertar para que los lotes nuevos no afecten el precio.
	components := make([]entity.BreakdownComponent, 0, len(prod.Recipe.Components))
	value := decimal.Zero
	for _, c := range prod.Recipe.Components {
		price := uc.componentPrice(c.Product)
		bc := entity.BreakdownComponent{Product: c.Product, Quantity: qty * c.Quantity, UnitPrice: price}
		components = append(components, bc)
		value = value.Add(bc.Value())
	}
	baseCost := prod.Recipe.CostFactor.Mul(value).Neg()

	uc.stock.Consume(prod, qty)
	for _, bc := range components {
		uc.stock.Insert(&entity.Batch{Product: bc.Product, Partner: p, UnitPrice: bc.UnitPrice, Quantity: bc.Quantity})
	}

	tx := uc.ledger.Append(func(id int) *entity.Transaction {
		return entity.NewBreakdown(id, prod, p, qty, baseCost, uc.date, components)
	})
	uc.ledger.Credit(tx.PaidAmount)
	partner.AwardPoints(p, tx.PaidAmount)

	uc.log.Info().
		Int("tx", tx.ID).
		Str("partner", p.ID).
		Str("product", prod.ID).
		Int("qty", qty).
		Str("base", baseCost.String()).
		Msg("desagregación registrada")
	return tx, nil
}

// componentPrice lote más barato, o precio máximo histórico, o cero.
func (uc *WarehouseUseCase) componentPrice(p *entity.Product) decimal.Decimal {
	if price, ok := uc.stock.CheapestPrice(p); ok {
		return price
	}
	if p.Priced {
		return p.MaxPrice
	}
	return decimal.Zero
}
