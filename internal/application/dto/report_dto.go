package dto

import "github.com/shopspring/decimal"

// WarehouseReport vista completa del almacén para listados, PDF y XML.
// Cada fila trae sus valores y la línea de texto ya formateada.
type WarehouseReport struct {
	Date              int              `json:"date"`
	AvailableBalance  decimal.Decimal  `json:"available_balance"`
	AccountingBalance decimal.Decimal  `json:"accounting_balance"`
	Products          []ProductRow     `json:"products"`
	Batches           []BatchRow       `json:"batches"`
	Partners          []PartnerRow     `json:"partners"`
	Transactions      []TransactionRow `json:"transactions"`
}

// ProductRow producto con su stock directo.
type ProductRow struct {
	ID         string          `json:"id"`
	MaxPrice   decimal.Decimal `json:"max_price"`
	Stock      int             `json:"stock"`
	Derived    bool            `json:"derived"`
	CostFactor decimal.Decimal `json:"cost_factor,omitempty"`
	Recipe     string          `json:"recipe,omitempty"`
	Line       string          `json:"line"`
}

// BatchRow lote.
type BatchRow struct {
	ProductID string          `json:"product_id"`
	PartnerID string          `json:"partner_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Line      string          `json:"line"`
}

// PartnerRow socio con sus totales.
type PartnerRow struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Tier      string          `json:"tier"`
	Points    decimal.Decimal `json:"points"`
	Purchases decimal.Decimal `json:"purchases"`
	Sales     decimal.Decimal `json:"sales"`
	PaidSales decimal.Decimal `json:"paid_sales"`
	Line      string          `json:"line"`
}

// TransactionRow transacción con su valor actual.
type TransactionRow struct {
	ID        int             `json:"id"`
	Kind      string          `json:"kind"`
	PartnerID string          `json:"partner_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	Current   decimal.Decimal `json:"current"`
	Paid      bool            `json:"paid"`
	Line      string          `json:"line"`
}
