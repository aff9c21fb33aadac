package entity

import "github.com/shopspring/decimal"

// TransactionKind tipo de transacción.
type TransactionKind int

const (
	KindPurchase  TransactionKind = iota // compra: el almacén compra al socio
	KindSale                             // venta a crédito al socio
	KindBreakdown                        // desagregación de un derivado en sus componentes
)

func (k TransactionKind) String() string {
	switch k {
	case KindPurchase:
		return "COMPRA"
	case KindSale:
		return "VENDA"
	case KindBreakdown:
		return "DESAGREGAÇÃO"
	}
	return "DESCONOCIDA"
}

// BreakdownComponent producto generado por una desagregación.
type BreakdownComponent struct {
	Product   *Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// Value cantidad × precio unitario.
func (c BreakdownComponent) Value() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Transaction transacción del almacén con un socio sobre un producto.
// Los campos de pago aplican a ventas; compras y desagregaciones nacen pagadas.
type Transaction struct {
	ID       int
	Kind     TransactionKind
	Product  *Product
	Partner  *Partner
	Quantity int
	Date     int

	// BaseCost valor base: compra = qty×precio, venta = costo de los lotes consumidos
	// (más fabricación), desagregación = puede ser negativo.
	BaseCost decimal.Decimal

	Deadline    int // solo ventas
	Paid        bool
	PaidAmount  decimal.Decimal
	PaymentDate int

	Components []BreakdownComponent // solo desagregaciones
}

// NewPurchase compra pagada en la fecha de creación.
func NewPurchase(id int, product *Product, partner *Partner, qty int, unitPrice decimal.Decimal, date int) *Transaction {
	total := unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return &Transaction{
		ID: id, Kind: KindPurchase, Product: product, Partner: partner, Quantity: qty, Date: date,
		BaseCost: total, Paid: true, PaidAmount: total, PaymentDate: date,
	}
}

// NewSale venta a crédito sin pagar.
func NewSale(id int, product *Product, partner *Partner, qty int, baseCost decimal.Decimal, date, deadline int) *Transaction {
	return &Transaction{
		ID: id, Kind: KindSale, Product: product, Partner: partner, Quantity: qty, Date: date,
		BaseCost: baseCost, Deadline: deadline, PaidAmount: decimal.Zero,
	}
}

// NewBreakdown desagregación; el socio paga max(0, baseCost) en el acto.
func NewBreakdown(id int, product *Product, partner *Partner, qty int, baseCost decimal.Decimal, date int, components []BreakdownComponent) *Transaction {
	return &Transaction{
		ID: id, Kind: KindBreakdown, Product: product, Partner: partner, Quantity: qty, Date: date,
		BaseCost: baseCost, Paid: true, PaidAmount: decimal.Max(decimal.Zero, baseCost), PaymentDate: date,
		Components: components,
	}
}

// IsSale indica si es una venta a crédito.
func (t *Transaction) IsSale() bool { return t.Kind == KindSale }

// MarkPaid fija el monto y la fecha de pago una única vez. Devuelve false si ya estaba pagada.
func (t *Transaction) MarkPaid(amount decimal.Decimal, date int) bool {
	if t.Paid {
		return false
	}
	t.Paid = true
	t.PaidAmount = amount
	t.PaymentDate = date
	return true
}
