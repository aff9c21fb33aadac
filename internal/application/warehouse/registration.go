package warehouse

import (
	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RegisterPartner registra un socio nuevo (domain.ErrPartnerAlreadyExists si el id ya existe).
func (uc *WarehouseUseCase) RegisterPartner(id, name, address string) (*entity.Partner, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.partners.Register(id, name, address)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("partner", p.ID).Msg("socio registrado")
	return p, nil
}

// RegisterProduct registra un producto simple.
func (uc *WarehouseUseCase) RegisterProduct(id string) (*entity.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.catalog.RegisterSimple(id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product", p.ID).Msg("producto registrado")
	return p, nil
}

// RegisterDerivedProduct registra un producto derivado; todos los componentes deben existir.
func (uc *WarehouseUseCase) RegisterDerivedProduct(id string, costFactor decimal.Decimal, components []catalog.ComponentInput) (*entity.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.catalog.RegisterDerived(id, costFactor, components)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product", p.ID).Str("recipe", p.Recipe.String()).Msg("producto derivado registrado")
	return p, nil
}

// ToggleNotifications alterna las notificaciones de un producto para un socio.
// Devuelve true si quedan silenciadas.
func (uc *WarehouseUseCase) ToggleNotifications(partnerID, productID string) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return false, err
	}
	prod, err := uc.catalog.MustGet(productID)
	if err != nil {
		return false, err
	}
	return uc.dispatcher.Toggle(p, prod), nil
}

// ClearPendingNotifications devuelve y vacía las notificaciones pendientes del socio.
func (uc *WarehouseUseCase) ClearPendingNotifications(partnerID string) ([]entity.Notification, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p, err := uc.partners.MustGet(partnerID)
	if err != nil {
		return nil, err
	}
	return uc.dispatcher.Drain(p), nil
}
