package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier estatuto de un socio; gobierna descuentos, penalizaciones y puntos.
type Tier int

const (
	TierNormal Tier = iota
	TierSelection
	TierElite
)

// String nombre del estatuto tal como se muestra en los listados.
func (t Tier) String() string {
	switch t {
	case TierSelection:
		return "SELECTION"
	case TierElite:
		return "ELITE"
	default:
		return "NORMAL"
	}
}

// ParseTier inverso de String; ok=false si el nombre no existe.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "NORMAL":
		return TierNormal, true
	case "SELECTION":
		return TierSelection, true
	case "ELITE":
		return TierElite, true
	}
	return TierNormal, false
}

// Partner socio del almacén (proveedor y cliente).
// Purchases/Sales/Breakdowns guardan ids de transacción en orden de creación.
type Partner struct {
	ID         string
	Key        string
	Name       string
	Address    string
	Tier       Tier
	Points     decimal.Decimal
	Purchases  []int
	Sales      []int
	Breakdowns []int

	pending []Notification
	muted   map[string]struct{}
}

// NewPartner crea un socio Normal sin puntos.
func NewPartner(id, name, address string) *Partner {
	return &Partner{
		ID:      id,
		Key:     NormalizeKey(id),
		Name:    name,
		Address: address,
		Tier:    TierNormal,
		Points:  decimal.Zero,
		muted:   make(map[string]struct{}),
	}
}

// Notify encola una notificación (FIFO).
func (p *Partner) Notify(n Notification) {
	p.pending = append(p.pending, n)
}

// PendingNotifications copia de la cola sin vaciarla.
func (p *Partner) PendingNotifications() []Notification {
	out := make([]Notification, len(p.pending))
	copy(out, p.pending)
	return out
}

// DrainNotifications devuelve las notificaciones pendientes y vacía la cola.
func (p *Partner) DrainNotifications() []Notification {
	out := p.pending
	p.pending = nil
	return out
}

// ToggleMuted alterna las notificaciones del producto con clave productKey.
// Devuelve true si quedan silenciadas.
func (p *Partner) ToggleMuted(productKey string) bool {
	if p.muted == nil {
		p.muted = make(map[string]struct{})
	}
	if _, ok := p.muted[productKey]; ok {
		delete(p.muted, productKey)
		return false
	}
	p.muted[productKey] = struct{}{}
	return true
}

// IsMuted indica si el socio silenció el producto.
func (p *Partner) IsMuted(productKey string) bool {
	_, ok := p.muted[productKey]
	return ok
}

// MutedKeys claves de productos silenciados, ordenadas.
func (p *Partner) MutedKeys() []string {
	keys := make([]string, 0, len(p.muted))
	for k := range p.muted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
