package pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"1000":     "1.000",
		"25000":    "25.000",
		"-1234567": "-1.234.567",
		"1999.5":   "2.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), "formatMoney(%s)", in)
	}
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, splitEvery("abcdefghij", 4))
	assert.Equal(t, []string{"ab"}, splitEvery("ab", 4))
	assert.Nil(t, splitEvery("", 4))
}

func TestGenerateStockReport(t *testing.T) {
	r := &dto.WarehouseReport{
		Date:              2,
		AvailableBalance:  decimal.NewFromInt(-150),
		AccountingBalance: decimal.RequireFromString("-122.5"),
		Products: []dto.ProductRow{
			{ID: "A", MaxPrice: decimal.NewFromInt(10), Stock: 8},
			{ID: "AB", Derived: true, CostFactor: decimal.RequireFromString("0.1"), Recipe: "A:2#B:1"},
		},
		Batches: []dto.BatchRow{{ProductID: "A", PartnerID: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 8}},
		Partners: []dto.PartnerRow{{ID: "P1", Name: "Ana", Tier: "NORMAL", Points: decimal.Zero,
			Purchases: decimal.NewFromInt(150), Sales: decimal.Zero, PaidSales: decimal.Zero}},
	}
	g := NewMarotoReportGenerator("Almacén GGC")

	plain, err := g.GenerateStockReport(context.Background(), r, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(plain, []byte("%PDF")), "el resultado es un PDF")

	withDigest, err := g.GenerateStockReport(context.Background(), r, strings.Repeat("ab", 32))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(withDigest, []byte("%PDF")))
	assert.Greater(t, len(withDigest), len(plain), "el digest agrega texto y QR")
}
