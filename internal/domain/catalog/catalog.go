package catalog

import (
	"sort"

	"github.com/jhoicas/almacen-ggc/internal/domain"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComponentInput componente de receta por id (antes de resolver el producto).
type ComponentInput struct {
	ProductID string
	Quantity  int
}

// Catalog productos del almacén indexados por id normalizado. Los productos no se eliminan.
type Catalog struct {
	products map[string]*entity.Product
}

// New construye un catálogo vacío.
func New() *Catalog {
	return &Catalog{products: make(map[string]*entity.Product)}
}

// Get busca por id (sin distinguir mayúsculas ni acentos).
func (c *Catalog) Get(id string) (*entity.Product, bool) {
	p, ok := c.products[entity.NormalizeKey(id)]
	return p, ok
}

// MustGet como Get pero devuelve domain.ErrUnknownProduct.
func (c *Catalog) MustGet(id string) (*entity.Product, error) {
	p, ok := c.Get(id)
	if !ok {
		return nil, domain.UnknownProduct(id)
	}
	return p, nil
}

// RegisterSimple registra un producto simple.
func (c *Catalog) RegisterSimple(id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := c.Get(id); ok {
		return nil, &domain.DuplicateKeyError{Kind: domain.ErrProductAlreadyExists, ID: id}
	}
	p := entity.NewProduct(id)
	c.products[p.Key] = p
	return p, nil
}

// BuildRecipe resuelve los componentes contra el catálogo sin registrar nada.
// Todos los componentes deben existir, con cantidad > 0, y costFactor >= 0.
func (c *Catalog) BuildRecipe(costFactor decimal.Decimal, components []ComponentInput) (*entity.Recipe, error) {
	if costFactor.IsNegative() || len(components) == 0 {
		return nil, domain.ErrInvalidInput
	}
	resolved := make([]entity.Component, 0, len(components))
	for _, in := range components {
		p, err := c.MustGet(in.ProductID)
		if err != nil {
			return nil, err
		}
		if !domain.ValidQuantity(in.Quantity) {
			return nil, domain.ErrInvalidInput
		}
		resolved = append(resolved, entity.Component{Product: p, Quantity: in.Quantity})
	}
	return entity.NewRecipe(costFactor, resolved), nil
}

// RegisterDerived registra un producto derivado. No modifica el catálogo si algo falla.
func (c *Catalog) RegisterDerived(id string, costFactor decimal.Decimal, components []ComponentInput) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, ok := c.Get(id); ok {
		return nil, &domain.DuplicateKeyError{Kind: domain.ErrProductAlreadyExists, ID: id}
	}
	recipe, err := c.BuildRecipe(costFactor, components)
	if err != nil {
		return nil, err
	}
	p := entity.NewDerivedProduct(id, recipe)
	c.products[p.Key] = p
	return p, nil
}

// Put inserta un producto ya construido (restauración de snapshots).
func (c *Catalog) Put(p *entity.Product) error {
	if _, ok := c.products[p.Key]; ok {
		return &domain.DuplicateKeyError{Kind: domain.ErrProductAlreadyExists, ID: p.ID}
	}
	c.products[p.Key] = p
	return nil
}

// All productos ordenados por id normalizado.
func (c *Catalog) All() []*entity.Product {
	out := make([]*entity.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len número de productos.
func (c *Catalog) Len() int { return len(c.products) }
