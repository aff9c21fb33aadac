// Package importer lee el archivo de carga inicial del almacén.
//
// Formato (un registro por línea, campos separados por '|'):
//
//	PARTNER|id|nombre|dirección
//	BATCH_S|producto|socio|precio|cantidad
//	BATCH_M|producto|socio|precio|cantidad|factor|c1:q1#c2:q2
//
// Las líneas en blanco se ignoran. La primera línea con error aborta la carga;
// las anteriores ya quedaron aplicadas.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-ggc/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ErrMalformedEntry línea con formato inválido.
var ErrMalformedEntry = errors.New("entrada mal formada")

// ParseError error en una línea concreta (numerada desde 1).
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("línea %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Visitor recibe cada registro ya interpretado.
type Visitor interface {
	OnPartner(id, name, address string) error
	OnBatch(productID, partnerID string, qty int, unitPrice decimal.Decimal) error
	OnDerivedBatch(productID, partnerID string, qty int, unitPrice, costFactor decimal.Decimal, components []catalog.ComponentInput) error
}

// ImportFile abre path y lo procesa con Parse.
func ImportFile(path string, v Visitor) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("importer: abrir %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, v)
}

// Parse procesa r línea a línea.
func Parse(r io.Reader, v Visitor) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseLine(line, v); err != nil {
			return &ParseError{Line: n, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("importer: leer: %w", err)
	}
	return nil
}

func parseLine(line string, v Visitor) error {
	fields := strings.Split(line, "|")
	if len(fields) < 2 {
		return fmt.Errorf("%w: falta '|'", ErrMalformedEntry)
	}
	switch fields[0] {
	case "PARTNER":
		if err := arity(fields, 4); err != nil {
			return err
		}
		return v.OnPartner(fields[1], fields[2], fields[3])
	case "BATCH_S":
		if err := arity(fields, 5); err != nil {
			return err
		}
		price, qty, err := priceAndQuantity(fields[3], fields[4])
		if err != nil {
			return err
		}
		return v.OnBatch(fields[1], fields[2], qty, price)
	case "BATCH_M":
		if err := arity(fields, 7); err != nil {
			return err
		}
		price, qty, err := priceAndQuantity(fields[3], fields[4])
		if err != nil {
			return err
		}
		factor, err := decimal.NewFromString(fields[5])
		if err != nil {
			return fmt.Errorf("%w: factor %q", ErrMalformedEntry, fields[5])
		}
		components, err := ParseRecipe(fields[6])
		if err != nil {
			return err
		}
		return v.OnDerivedBatch(fields[1], fields[2], qty, price, factor, components)
	}
	return fmt.Errorf("%w: tipo desconocido %q", ErrMalformedEntry, fields[0])
}

// ParseRecipe interpreta "c1:q1#c2:q2".
func ParseRecipe(s string) ([]catalog.ComponentInput, error) {
	var out []catalog.ComponentInput
	for _, part := range strings.Split(s, "#") {
		id, q, ok := strings.Cut(part, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: componente %q", ErrMalformedEntry, part)
		}
		qty, err := strconv.Atoi(q)
		if err != nil {
			return nil, fmt.Errorf("%w: cantidad %q", ErrMalformedEntry, q)
		}
		out = append(out, catalog.ComponentInput{ProductID: id, Quantity: qty})
	}
	return out, nil
}

func arity(fields []string, want int) error {
	if len(fields) != want {
		return fmt.Errorf("%w: %s espera %d campos, tiene %d", ErrMalformedEntry, fields[0], want, len(fields))
	}
	return nil
}

func priceAndQuantity(p, q string) (decimal.Decimal, int, error) {
	price, err := decimal.NewFromString(p)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("%w: precio %q", ErrMalformedEntry, p)
	}
	qty, err := strconv.Atoi(q)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("%w: cantidad %q", ErrMalformedEntry, q)
	}
	return price, qty, nil
}
