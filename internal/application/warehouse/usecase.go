package warehouse

import (
	"sync"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/jhoicas/almacen-ggc/internal/domain/inventory"
	"github.com/jhoicas/almacen-ggc/internal/domain/ledger"
	"github.com/jhoicas/almacen-ggc/internal/domain/notification"
	"github.com/jhoicas/almacen-ggc/internal/domain/partner"
	"github.com/jhoicas/almacen-ggc/pkg/logger"
)

// WarehouseUseCase motor transaccional del almacén: compras, ventas a crédito, pagos y
// desagregaciones, con sus efectos sobre inventario, estatuto de socios, saldos y notificaciones.
// Cada operación pública es atómica: se serializa con mu y no deja estado parcial si falla.
type WarehouseUseCase struct {
	mu sync.Mutex

	log        *logger.Logger
	date       int
	catalog    *catalog.Catalog
	stock      *inventory.Stock
	resolver   *inventory.Resolver
	partners   *partner.Registry
	ledger     *ledger.Ledger
	dispatcher *notification.Dispatcher
}

// NewWarehouseUseCase construye un almacén vacío en la fecha 0.
func NewWarehouseUseCase(log *logger.Logger) *WarehouseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &WarehouseUseCase{log: log}
	uc.reset()
	return uc
}

func (uc *WarehouseUseCase) reset() {
	uc.date = 0
	uc.catalog = catalog.New()
	uc.stock = inventory.NewStock()
	uc.resolver = inventory.NewResolver(uc.stock)
	uc.partners = partner.NewRegistry()
	uc.ledger = ledger.New()
	uc.dispatcher = notification.NewDispatcher(uc.partners.All)
}

// Date fecha actual del almacén (días).
func (uc *WarehouseUseCase) Date() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.date
}

// AdvanceDate avanza la fecha; days debe ser positivo.
func (uc *WarehouseUseCase) AdvanceDate(days int) error {
	if days <= 0 {
		return domain.ErrInvalidDate
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.date += days
	uc.log.Debug().Int("date", uc.date).Msg("fecha avanzada")
	return nil
}
