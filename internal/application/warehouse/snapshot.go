package warehouse

import (
	"fmt"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/jhoicas/almacen-ggc/internal/domain/inventory"
	"github.com/jhoicas/almacen-ggc/internal/domain/ledger"
	"github.com/jhoicas/almacen-ggc/internal/domain/notification"
	"github.com/jhoicas/almacen-ggc/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// Snapshot copia plana del estado completo del almacén.
func (uc *WarehouseUseCase) Snapshot() *entity.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := &entity.Snapshot{
		Version:           entity.SnapshotVersion,
		Date:              uc.date,
		NextTransactionID: uc.ledger.NextID(),
		AvailableBalance:  uc.ledger.Available().String(),
	}
	for _, p := range uc.catalog.All() {
		rec := entity.ProductRecord{
			ID:       p.ID,
			Priced:   p.Priced,
			MinPrice: p.MinPrice.String(),
			MaxPrice: p.MaxPrice.String(),
			Derived:  p.IsDerived(),
		}
		if p.IsDerived() {
			rec.CostFactor = p.Recipe.CostFactor.String()
			for _, c := range p.Recipe.Components {
				rec.Components = append(rec.Components, entity.ComponentRecord{ProductID: c.Product.ID, Quantity: c.Quantity})
			}
		}
		s.Products = append(s.Products, rec)
	}
	for _, b := range uc.stock.All() {
		s.Batches = append(s.Batches, entity.BatchRecord{
			ProductID: b.Product.ID,
			PartnerID: b.Partner.ID,
			UnitPrice: b.UnitPrice.String(),
			Quantity:  b.Quantity,
		})
	}
	for _, p := range uc.partners.All() {
		rec := entity.PartnerRecord{
			ID:      p.ID,
			Name:    p.Name,
			Address: p.Address,
			Tier:    p.Tier.String(),
			Points:  p.Points.String(),
			Muted:   p.MutedKeys(),
		}
		for _, n := range p.PendingNotifications() {
			rec.Pending = append(rec.Pending, entity.NotificationRecord{
				Type:      string(n.Type),
				ProductID: n.ProductID,
				UnitPrice: n.UnitPrice.String(),
			})
		}
		s.Partners = append(s.Partners, rec)
	}
	for _, t := range uc.ledger.All() {
		rec := entity.TransactionRecord{
			ID:          t.ID,
			Kind:        t.Kind.String(),
			ProductID:   t.Product.ID,
			PartnerID:   t.Partner.ID,
			Quantity:    t.Quantity,
			Date:        t.Date,
			BaseCost:    t.BaseCost.String(),
			Deadline:    t.Deadline,
			Paid:        t.Paid,
			PaidAmount:  t.PaidAmount.String(),
			PaymentDate: t.PaymentDate,
		}
		for _, c := range t.Components {
			rec.Components = append(rec.Components, entity.BreakdownComponentRecord{
				ProductID: c.Product.ID,
				Quantity:  c.Quantity,
				UnitPrice: c.UnitPrice.String(),
			})
		}
		s.Transactions = append(s.Transactions, rec)
	}
	return s
}

// Restore reemplaza el estado completo por el del snapshot. Es todo o nada: si algún
// registro es inválido devuelve un error que envuelve domain.ErrCorruptSnapshot y el
// almacén queda como estaba.
func (uc *WarehouseUseCase) Restore(s *entity.Snapshot) error {
	if s == nil {
		return domain.ErrCorruptSnapshot
	}
	st, err := buildState(s)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCorruptSnapshot, err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.date = s.Date
	uc.catalog = st.catalog
	uc.stock = st.stock
	uc.resolver = inventory.NewResolver(st.stock)
	uc.partners = st.partners
	uc.ledger = st.ledger
	uc.dispatcher = notification.NewDispatcher(st.partners.All)

	uc.log.Info().
		Int("date", s.Date).
		Int("products", st.catalog.Len()).
		Int("transactions", len(s.Transactions)).
		Msg("estado restaurado")
	return nil
}

type restoredState struct {
	catalog  *catalog.Catalog
	stock    *inventory.Stock
	partners *partner.Registry
	ledger   *ledger.Ledger
}

func buildState(s *entity.Snapshot) (*restoredState, error) {
	if s.Version != entity.SnapshotVersion {
		return nil, fmt.Errorf("versión %d no soportada", s.Version)
	}
	if s.Date < 0 {
		return nil, domain.ErrInvalidDate
	}
	st := &restoredState{
		catalog:  catalog.New(),
		stock:    inventory.NewStock(),
		partners: partner.NewRegistry(),
		ledger:   ledger.New(),
	}
	if err := restoreProducts(st.catalog, s.Products); err != nil {
		return nil, err
	}
	for _, rec := range s.Partners {
		p, err := restorePartner(rec)
		if err != nil {
			return nil, err
		}
		if err := st.partners.Put(p); err != nil {
			return nil, err
		}
	}
	for _, rec := range s.Batches {
		b, err := restoreBatch(st, rec)
		if err != nil {
			return nil, err
		}
		st.stock.Restore(b)
	}

	txs := make([]*entity.Transaction, 0, len(s.Transactions))
	for _, rec := range s.Transactions {
		t, err := restoreTransaction(st, rec)
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case entity.KindPurchase:
			t.Partner.Purchases = append(t.Partner.Purchases, t.ID)
		case entity.KindSale:
			t.Partner.Sales = append(t.Partner.Sales, t.ID)
		case entity.KindBreakdown:
			t.Partner.Breakdowns = append(t.Partner.Breakdowns, t.ID)
		}
		txs = append(txs, t)
	}
	available, err := decimal.NewFromString(s.AvailableBalance)
	if err != nil {
		return nil, fmt.Errorf("saldo disponible: %w", err)
	}
	st.ledger.Restore(txs, s.NextTransactionID, available)
	return st, nil
}

// restoreProducts inserta los productos en orden de dependencias: en cada pasada entran los
// derivados cuyos componentes ya están en el catálogo. Si una pasada no avanza, la receta
// referencia un producto inexistente o es cíclica.
func restoreProducts(c *catalog.Catalog, records []entity.ProductRecord) error {
	pending := records
	for len(pending) > 0 {
		var next []entity.ProductRecord
		for _, rec := range pending {
			p, ok, err := restoreProduct(c, rec)
			if err != nil {
				return err
			}
			if !ok {
				next = append(next, rec)
				continue
			}
			if err := c.Put(p); err != nil {
				return err
			}
		}
		if len(next) == len(pending) {
			return fmt.Errorf("%w: producto %q", domain.ErrCyclicRecipe, next[0].ID)
		}
		pending = next
	}
	return nil
}

// restoreProduct ok=false si algún componente aún no está en el catálogo.
func restoreProduct(c *catalog.Catalog, rec entity.ProductRecord) (*entity.Product, bool, error) {
	if rec.ID == "" {
		return nil, false, domain.ErrInvalidInput
	}
	var p *entity.Product
	if rec.Derived {
		inputs := make([]catalog.ComponentInput, 0, len(rec.Components))
		for _, cr := range rec.Components {
			if _, ok := c.Get(cr.ProductID); !ok {
				return nil, false, nil
			}
			inputs = append(inputs, catalog.ComponentInput{ProductID: cr.ProductID, Quantity: cr.Quantity})
		}
		factor, err := decimal.NewFromString(rec.CostFactor)
		if err != nil {
			return nil, false, fmt.Errorf("factor de costo de %q: %w", rec.ID, err)
		}
		recipe, err := c.BuildRecipe(factor, inputs)
		if err != nil {
			return nil, false, err
		}
		p = entity.NewDerivedProduct(rec.ID, recipe)
	} else {
		p = entity.NewProduct(rec.ID)
	}
	if rec.Priced {
		lo, err := decimal.NewFromString(rec.MinPrice)
		if err != nil {
			return nil, false, fmt.Errorf("precio mínimo de %q: %w", rec.ID, err)
		}
		hi, err := decimal.NewFromString(rec.MaxPrice)
		if err != nil {
			return nil, false, fmt.Errorf("precio máximo de %q: %w", rec.ID, err)
		}
		p.MinPrice, p.MaxPrice, p.Priced = lo, hi, true
	}
	return p, true, nil
}

func restorePartner(rec entity.PartnerRecord) (*entity.Partner, error) {
	if rec.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	p := entity.NewPartner(rec.ID, rec.Name, rec.Address)
	tier, ok := entity.ParseTier(rec.Tier)
	if !ok {
		return nil, fmt.Errorf("estatuto %q de %q", rec.Tier, rec.ID)
	}
	points, err := decimal.NewFromString(rec.Points)
	if err != nil {
		return nil, fmt.Errorf("puntos de %q: %w", rec.ID, err)
	}
	p.Tier, p.Points = tier, points
	for _, key := range rec.Muted {
		p.ToggleMuted(entity.NormalizeKey(key))
	}
	for _, nr := range rec.Pending {
		price, err := decimal.NewFromString(nr.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("notificación de %q: %w", rec.ID, err)
		}
		t := entity.NotificationType(nr.Type)
		if t != entity.NotificationNew && t != entity.NotificationBargain {
			return nil, fmt.Errorf("tipo de notificación %q", nr.Type)
		}
		p.Notify(entity.Notification{Type: t, ProductID: nr.ProductID, UnitPrice: price})
	}
	return p, nil
}

func restoreBatch(st *restoredState, rec entity.BatchRecord) (*entity.Batch, error) {
	prod, err := st.catalog.MustGet(rec.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := st.partners.MustGet(rec.PartnerID)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(rec.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("precio del lote de %q: %w", rec.ProductID, err)
	}
	if rec.Quantity < 0 || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return &entity.Batch{Product: prod, Partner: p, UnitPrice: price, Quantity: rec.Quantity}, nil
}

func restoreTransaction(st *restoredState, rec entity.TransactionRecord) (*entity.Transaction, error) {
	kind, ok := parseKind(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("tipo de transacción %q", rec.Kind)
	}
	prod, err := st.catalog.MustGet(rec.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := st.partners.MustGet(rec.PartnerID)
	if err != nil {
		return nil, err
	}
	base, err := decimal.NewFromString(rec.BaseCost)
	if err != nil {
		return nil, fmt.Errorf("transacción %d: %w", rec.ID, err)
	}
	paid, err := decimal.NewFromString(rec.PaidAmount)
	if err != nil {
		return nil, fmt.Errorf("transacción %d: %w", rec.ID, err)
	}
	t := &entity.Transaction{
		ID:          rec.ID,
		Kind:        kind,
		Product:     prod,
		Partner:     p,
		Quantity:    rec.Quantity,
		Date:        rec.Date,
		BaseCost:    base,
		Deadline:    rec.Deadline,
		Paid:        rec.Paid,
		PaidAmount:  paid,
		PaymentDate: rec.PaymentDate,
	}
	for _, cr := range rec.Components {
		cp, err := st.catalog.MustGet(cr.ProductID)
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(cr.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("transacción %d: %w", rec.ID, err)
		}
		t.Components = append(t.Components, entity.BreakdownComponent{Product: cp, Quantity: cr.Quantity, UnitPrice: price})
	}
	return t, nil
}

func parseKind(s string) (entity.TransactionKind, bool) {
	for _, k := range []entity.TransactionKind{entity.KindPurchase, entity.KindSale, entity.KindBreakdown} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
