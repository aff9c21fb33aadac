package entity

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey devuelve la clave de búsqueda de un id de socio o producto:
// sin diacríticos y en minúsculas (case folding), de modo que "Café" y "CAFE" colisionan.
// Los transformadores de x/text no son seguros entre goroutines, por eso se crean por llamada.
func NormalizeKey(id string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(stripMarks, id)
	if err != nil {
		s = id
	}
	return cases.Fold().String(s)
}
