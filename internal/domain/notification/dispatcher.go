package notification

import "github.com/jhoicas/almacen-ggc/internal/domain/entity"

// Dispatcher reparte eventos de stock a los socios que no silenciaron el producto.
// Las preferencias viven en cada socio (entity.Partner.ToggleMuted).
type Dispatcher struct {
	partners func() []*entity.Partner
}

// NewDispatcher recibe la fuente de socios (normalmente Registry.All).
func NewDispatcher(partners func() []*entity.Partner) *Dispatcher {
	return &Dispatcher{partners: partners}
}

// Toggle alterna las notificaciones del producto para el socio; true si quedan silenciadas.
func (d *Dispatcher) Toggle(p *entity.Partner, product *entity.Product) bool {
	return p.ToggleMuted(product.Key)
}

// Dispatch encola la notificación en todos los socios suscritos y devuelve cuántos la recibieron.
func (d *Dispatcher) Dispatch(t entity.NotificationType, b *entity.Batch) int {
	n := entity.NewNotificationFor(t, b)
	sent := 0
	for _, p := range d.partners() {
		if p.IsMuted(b.Product.Key) {
			continue
		}
		p.Notify(n)
		sent++
	}
	return sent
}

// Drain devuelve y vacía las notificaciones pendientes del socio.
func (d *Dispatcher) Drain(p *entity.Partner) []entity.Notification {
	return p.DrainNotifications()
}
