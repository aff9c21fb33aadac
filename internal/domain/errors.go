package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidDate          = errors.New("fecha inválida")
	ErrUnknownPartner       = errors.New("socio desconocido")
	ErrUnknownProduct       = errors.New("producto desconocido")
	ErrUnknownTransaction   = errors.New("transacción desconocida")
	ErrPartnerAlreadyExists = errors.New("el socio ya existe")
	ErrProductAlreadyExists = errors.New("el producto ya existe")
	ErrInsufficientProducts = errors.New("productos insuficientes")
	ErrCyclicRecipe         = errors.New("receta cíclica")
	ErrSnapshotNotFound     = errors.New("snapshot no encontrado")
	ErrCorruptSnapshot      = errors.New("snapshot corrupto")
)

// MaxQuantity mayor cantidad aceptada en una operación o en una entrada de receta.
const MaxQuantity = 1 << 40

// ValidQuantity indica si qty es positiva y no supera MaxQuantity.
func ValidQuantity(qty int) bool { return qty > 0 && qty <= MaxQuantity }

// UnknownKeyError indica que un id (socio, producto o transacción) no existe.
// Envuelve el sentinel correspondiente para usar errors.Is.
type UnknownKeyError struct {
	Kind error
	ID   string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.ID)
}

func (e *UnknownKeyError) Unwrap() error { return e.Kind }

// UnknownPartner construye el error de socio inexistente.
func UnknownPartner(id string) error {
	return &UnknownKeyError{Kind: ErrUnknownPartner, ID: id}
}

// UnknownProduct construye el error de producto inexistente.
func UnknownProduct(id string) error {
	return &UnknownKeyError{Kind: ErrUnknownProduct, ID: id}
}

// UnknownTransaction construye el error de transacción inexistente.
func UnknownTransaction(id int) error {
	return &UnknownKeyError{Kind: ErrUnknownTransaction, ID: fmt.Sprint(id)}
}

// DuplicateKeyError conflicto de registro: el id normalizado ya está en uso.
type DuplicateKeyError struct {
	Kind error
	ID   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.ID)
}

func (e *DuplicateKeyError) Unwrap() error { return e.Kind }

// InsufficientProductsError stock (incluida la capacidad de fabricación) insuficiente.
// ProductID es el producto más profundo que falta en la cadena de recetas.
type InsufficientProductsError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientProductsError) Error() string {
	return fmt.Sprintf("%s: %q solicitado %d, disponible %d",
		ErrInsufficientProducts, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientProductsError) Unwrap() error { return ErrInsufficientProducts }
