package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Café":   "cafe",
		"CAFE":   "cafe",
		"Ñandú":  "nandu",
		"açúcar": "acucar",
		"p1":     "p1",
		"":       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.NormalizeKey(in), "clave de %q", in)
	}
	assert.Equal(t, entity.NormalizeKey("AÇÚCAR"), entity.NormalizeKey("acucar"),
		"mayúsculas y acentos deben colisionar")
}
