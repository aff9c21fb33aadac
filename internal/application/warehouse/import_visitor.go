package warehouse

import (
	"fmt"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Los métodos On* cargan el estado inicial desde un archivo de importación.
// Los lotes importados no crean transacciones, no mueven saldos ni emiten notificaciones.
// Cada llamada valida todo antes de modificar el almacén.

// OnPartner registra un socio importado.
func (uc *WarehouseUseCase) OnPartner(id, name, address string) error {
	_, err := uc.RegisterPartner(id, name, address)
	return err
}

// OnBatch importa un lote de un producto simple; el producto se crea si no existe.
func (uc *WarehouseUseCase) OnBatch(productID, partnerID string, qty int, unitPrice decimal.Decimal) error {
	if productID == "" || qty < 0 || qty > domain.MaxQuantity || unitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return err
	}
	prod, ok := uc.catalog.Get(productID)
	if !ok {
		if prod, err = uc.catalog.RegisterSimple(productID); err != nil {
			return err
		}
	}
	uc.importBatch(prod, p, qty, unitPrice)
	return nil
}

// OnDerivedBatch importa un lote de un producto derivado. Los componentes de la receta deben
// existir aunque el producto ya esté registrado; si es nuevo se registra con esa receta, si ya
// existe la receta se ignora. Un producto existente que no es derivado se rechaza.
func (uc *WarehouseUseCase) OnDerivedBatch(productID, partnerID string, qty int, unitPrice, costFactor decimal.Decimal, components []catalog.ComponentInput) error {
	if productID == "" || qty < 0 || qty > domain.MaxQuantity || unitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return err
	}
	recipe, err := uc.catalog.BuildRecipe(costFactor, components)
	if err != nil {
		return err
	}
	prod, ok := uc.catalog.Get(productID)
	switch {
	case !ok:
		if prod, err = uc.catalog.RegisterDerived(productID, costFactor, components); err != nil {
			return err
		}
	case !prod.IsDerived():
		return fmt.Errorf("%w: %q no es un producto derivado", domain.ErrInvalidInput, prod.ID)
	default:
		uc.log.Debug().
			Str("product", prod.ID).
			Str("recipe", recipe.String()).
			Msg("receta importada ignorada: el producto ya existe")
	}
	uc.importBatch(prod, p, qty, unitPrice)
	return nil
}

func (uc *WarehouseUseCase) importBatch(prod *entity.Product, p *entity.Partner, qty int, unitPrice decimal.Decimal) {
	uc.stock.Insert(&entity.Batch{Product: prod, Partner: p, UnitPrice: unitPrice, Quantity: qty})
	uc.log.Debug().
		Str("product", prod.ID).
		Str("partner", p.ID).
		Int("qty", qty).
		Str("price", unitPrice.String()).
		Msg("lote importado")
}
