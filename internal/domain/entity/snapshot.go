package entity

// SnapshotVersion versión del formato de Snapshot.
const SnapshotVersion = 1

// Snapshot estado completo del almacén en registros planos (ids en lugar de punteros),
// para persistir y restaurar como una sola unidad. Los importes van como texto decimal.
type Snapshot struct {
	Version           int                 `msgpack:"version" json:"version"`
	Date              int                 `msgpack:"date" json:"date"`
	NextTransactionID int                 `msgpack:"next_tx_id" json:"next_transaction_id"`
	AvailableBalance  string              `msgpack:"available" json:"available_balance"`
	Products          []ProductRecord     `msgpack:"products" json:"products"`
	Batches           []BatchRecord       `msgpack:"batches" json:"batches"`
	Partners          []PartnerRecord     `msgpack:"partners" json:"partners"`
	Transactions      []TransactionRecord `msgpack:"transactions" json:"transactions"`
}

// ProductRecord producto con su receta (si es derivado) y precios observados.
type ProductRecord struct {
	ID         string            `msgpack:"id" json:"id"`
	Priced     bool              `msgpack:"priced" json:"priced"`
	MinPrice   string            `msgpack:"min_price" json:"min_price"`
	MaxPrice   string            `msgpack:"max_price" json:"max_price"`
	Derived    bool              `msgpack:"derived" json:"derived"`
	CostFactor string            `msgpack:"cost_factor,omitempty" json:"cost_factor,omitempty"`
	Components []ComponentRecord `msgpack:"components,omitempty" json:"components,omitempty"`
}

// ComponentRecord entrada de receta.
type ComponentRecord struct {
	ProductID string `msgpack:"product_id" json:"product_id"`
	Quantity  int    `msgpack:"quantity" json:"quantity"`
}

// BatchRecord lote.
type BatchRecord struct {
	ProductID string `msgpack:"product_id" json:"product_id"`
	PartnerID string `msgpack:"partner_id" json:"partner_id"`
	UnitPrice string `msgpack:"unit_price" json:"unit_price"`
	Quantity  int    `msgpack:"quantity" json:"quantity"`
}

// PartnerRecord socio con preferencias y notificaciones pendientes.
type PartnerRecord struct {
	ID      string               `msgpack:"id" json:"id"`
	Name    string               `msgpack:"name" json:"name"`
	Address string               `msgpack:"address" json:"address"`
	Tier    string               `msgpack:"tier" json:"tier"`
	Points  string               `msgpack:"points" json:"points"`
	Muted   []string             `msgpack:"muted,omitempty" json:"muted,omitempty"`
	Pending []NotificationRecord `msgpack:"pending,omitempty" json:"pending,omitempty"`
}

// NotificationRecord notificación pendiente.
type NotificationRecord struct {
	Type      string `msgpack:"type" json:"type"`
	ProductID string `msgpack:"product_id" json:"product_id"`
	UnitPrice string `msgpack:"unit_price" json:"unit_price"`
}

// TransactionRecord transacción de cualquier tipo; Kind es el nombre de TransactionKind.
type TransactionRecord struct {
	ID          int                        `msgpack:"id" json:"id"`
	Kind        string                     `msgpack:"kind" json:"kind"`
	ProductID   string                     `msgpack:"product_id" json:"product_id"`
	PartnerID   string                     `msgpack:"partner_id" json:"partner_id"`
	Quantity    int                        `msgpack:"quantity" json:"quantity"`
	Date        int                        `msgpack:"date" json:"date"`
	BaseCost    string                     `msgpack:"base_cost" json:"base_cost"`
	Deadline    int                        `msgpack:"deadline,omitempty" json:"deadline,omitempty"`
	Paid        bool                       `msgpack:"paid" json:"paid"`
	PaidAmount  string                     `msgpack:"paid_amount" json:"paid_amount"`
	PaymentDate int                        `msgpack:"payment_date" json:"payment_date"`
	Components  []BreakdownComponentRecord `msgpack:"components,omitempty" json:"components,omitempty"`
}

// BreakdownComponentRecord componente generado por una desagregación.
type BreakdownComponentRecord struct {
	ProductID string `msgpack:"product_id" json:"product_id"`
	Quantity  int    `msgpack:"quantity" json:"quantity"`
	UnitPrice string `msgpack:"unit_price" json:"unit_price"`
}
