package entity

import "github.com/shopspring/decimal"

// NotificationType tipos de notificación de stock.
type NotificationType string

const (
	NotificationNew     NotificationType = "NEW"     // producto sin stock vuelve a tener stock
	NotificationBargain NotificationType = "BARGAIN" // nuevo precio mínimo del producto
)

// Notification evento de stock dirigido a un socio; se consume al leerse.
type Notification struct {
	Type      NotificationType
	ProductID string
	UnitPrice decimal.Decimal
}

// NewNotificationFor construye la notificación a partir del lote que la dispara.
func NewNotificationFor(t NotificationType, b *Batch) Notification {
	return Notification{Type: t, ProductID: b.Product.ID, UnitPrice: b.UnitPrice}
}
