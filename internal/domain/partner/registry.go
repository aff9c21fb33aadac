package partner

import (
	"sort"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Registry socios indexados por id normalizado.
type Registry struct {
	partners map[string]*entity.Partner
}

// NewRegistry construye un registro vacío.
func NewRegistry() *Registry {
	return &Registry{partners: make(map[string]*entity.Partner)}
}

// Register crea un socio nuevo. Devuelve domain.ErrPartnerAlreadyExists si el id ya está en uso.
func (r *Registry) Register(id, name, address string) (*entity.Partner, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := r.Get(id); ok {
		return nil, &domain.DuplicateKeyError{Kind: domain.ErrPartnerAlreadyExists, ID: id}
	}
	p := entity.NewPartner(id, name, address)
	r.partners[p.Key] = p
	return p, nil
}

// Put inserta un socio ya construido (restauración de snapshots).
func (r *Registry) Put(p *entity.Partner) error {
	if _, ok := r.partners[p.Key]; ok {
		return &domain.DuplicateKeyError{Kind: domain.ErrPartnerAlreadyExists, ID: p.ID}
	}
	r.partners[p.Key] = p
	return nil
}

// Get busca por id sin distinguir mayúsculas ni acentos.
func (r *Registry) Get(id string) (*entity.Partner, bool) {
	p, ok := r.partners[entity.NormalizeKey(id)]
	return p, ok
}

// MustGet como Get pero con domain.ErrUnknownPartner.
func (r *Registry) MustGet(id string) (*entity.Partner, error) {
	p, ok := r.Get(id)
	if !ok {
		return nil, domain.UnknownPartner(id)
	}
	return p, nil
}

// All socios ordenados por id normalizado.
func (r *Registry) All() []*entity.Partner {
	out := make([]*entity.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// AwardPoints suma puntos por un pago y aplica las promociones que correspondan.
func AwardPoints(p *entity.Partner, paid decimal.Decimal) {
	p.Points = p.Points.Add(RewardPoints(paid))
	p.Tier = Promote(p.Tier, p.Points)
}

// PenalizeLatePayment baja al socio un estatuto (nunca por debajo de Normal).
func PenalizeLatePayment(p *entity.Partner) {
	p.Tier, p.Points = Demote(p.Tier, p.Points)
}
