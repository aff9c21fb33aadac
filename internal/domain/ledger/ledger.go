package ledger

import (
	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Ledger registro de transacciones con ids secuenciales (desde 0, nunca reutilizados)
// y saldo disponible del almacén (dinero efectivamente movido).
type Ledger struct {
	transactions []*entity.Transaction
	nextID       int
	available    decimal.Decimal
}

// New construye un libro vacío.
func New() *Ledger {
	return &Ledger{available: decimal.Zero}
}

// NextID id que recibirá la próxima transacción.
func (l *Ledger) NextID() int { return l.nextID }

// Append asigna el siguiente id a la transacción construida por build y la registra,
// además de anotarla en las listas del socio.
func (l *Ledger) Append(build func(id int) *entity.Transaction) *entity.Transaction {
	t := build(l.nextID)
	l.nextID++
	l.transactions = append(l.transactions, t)
	switch t.Kind {
	case entity.KindPurchase:
		t.Partner.Purchases = append(t.Partner.Purchases, t.ID)
	case entity.KindSale:
		t.Partner.Sales = append(t.Partner.Sales, t.ID)
	case entity.KindBreakdown:
		t.Partner.Breakdowns = append(t.Partner.Breakdowns, t.ID)
	}
	return t
}

// Get transacción por id.
func (l *Ledger) Get(id int) (*entity.Transaction, error) {
	// acceso directo si los ids son densos; si no, búsqueda lineal
	if id >= 0 && id < len(l.transactions) && l.transactions[id].ID == id {
		return l.transactions[id], nil
	}
	for _, t := range l.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.UnknownTransaction(id)
}

// All transacciones en orden de creación.
func (l *Ledger) All() []*entity.Transaction {
	out := make([]*entity.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Debit resta del saldo disponible (compras).
func (l *Ledger) Debit(amount decimal.Decimal) {
	l.available = l.available.Sub(amount)
}

// Credit suma al saldo disponible (pagos recibidos).
func (l *Ledger) Credit(amount decimal.Decimal) {
	l.available = l.available.Add(amount)
}

// Available saldo disponible.
func (l *Ledger) Available() decimal.Decimal { return l.available }

// Unpaid ventas a crédito aún sin pagar.
func (l *Ledger) Unpaid() []*entity.Transaction {
	var out []*entity.Transaction
	for _, t := range l.transactions {
		if t.IsSale() && !t.Paid {
			out = append(out, t)
		}
	}
	return out
}

// Restore reemplaza el estado completo (restauración de snapshots).
// nextID nunca queda por debajo del mayor id registrado + 1.
func (l *Ledger) Restore(transactions []*entity.Transaction, nextID int, available decimal.Decimal) {
	l.transactions = append([]*entity.Transaction(nil), transactions...)
	for _, t := range transactions {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	l.nextID = nextID
	l.available = available
}
