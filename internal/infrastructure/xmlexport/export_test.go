package xmlexport_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ggc/internal/application/dto"
	"github.com/jhoicas/almacen-ggc/internal/infrastructure/xmlexport"
)

func sampleReport() *dto.WarehouseReport {
	return &dto.WarehouseReport{
		Date:              3,
		AvailableBalance:  decimal.RequireFromString("-150"),
		AccountingBalance: decimal.RequireFromString("-122.5"),
		Products: []dto.ProductRow{
			{ID: "A", MaxPrice: decimal.NewFromInt(10), Stock: 8},
			{ID: "AB", Stock: 0, Derived: true, CostFactor: decimal.RequireFromString("0.1"), Recipe: "A:2#B:1"},
		},
		Batches: []dto.BatchRow{
			{ProductID: "A", PartnerID: "P1", UnitPrice: decimal.NewFromInt(10), Quantity: 8},
		},
		Partners: []dto.PartnerRow{
			{ID: "P1", Name: "Ana & Cia", Address: "Rua <1>", Tier: "NORMAL", Points: decimal.Zero,
				Purchases: decimal.NewFromInt(150), Sales: decimal.RequireFromString("27.5"), PaidSales: decimal.Zero},
		},
		Transactions: []dto.TransactionRow{
			{ID: 0, Kind: "COMPRA", PartnerID: "P1", ProductID: "A", Quantity: 10,
				BaseCost: decimal.NewFromInt(100), Current: decimal.NewFromInt(100), Paid: true},
		},
	}
}

func TestExport_Structure(t *testing.T) {
	data, err := xmlexport.Export(sampleReport())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Warehouse", root.Tag)
	assert.Equal(t, xmlexport.Namespace, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "3", root.SelectAttrValue("date", ""))

	assert.Equal(t, "-122.5", root.FindElement("Balances/Accounting").Text())
	assert.Len(t, root.FindElements("Products/Product"), 2)
	recipe := root.FindElement("Products/Product[@id='AB']/Recipe")
	require.NotNil(t, recipe)
	assert.Equal(t, "A:2#B:1", recipe.Text())
	assert.Equal(t, "0.1", recipe.SelectAttrValue("costFactor", ""))

	partner := root.FindElement("Partners/Partner")
	require.NotNil(t, partner)
	assert.Equal(t, "Ana & Cia", partner.FindElement("Name").Text(), "el texto se escapa y se recupera")
	assert.Equal(t, "Rua <1>", partner.FindElement("Address").Text())

	tx := root.FindElement("Transactions/Transaction")
	require.NotNil(t, tx)
	assert.Equal(t, "true", tx.SelectAttrValue("paid", ""))
}

func TestDigest_StableAndSensitive(t *testing.T) {
	a, err := xmlexport.Export(sampleReport())
	require.NoError(t, err)
	b, err := xmlexport.Export(sampleReport())
	require.NoError(t, err)

	da, err := xmlexport.Digest(a)
	require.NoError(t, err)
	db, err := xmlexport.Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 64)

	changed := sampleReport()
	changed.Batches[0].Quantity = 7
	c, err := xmlexport.Export(changed)
	require.NoError(t, err)
	dc, err := xmlexport.Digest(c)
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}

func TestCanonicalize_AttributeOrder(t *testing.T) {
	x, err := xmlexport.Canonicalize([]byte(`<r b="2" a="1"></r>`))
	require.NoError(t, err)
	y, err := xmlexport.Canonicalize([]byte(`<r a="1" b="2"/>`))
	require.NoError(t, err)
	assert.Equal(t, string(x), string(y))

	_, err = xmlexport.Canonicalize([]byte(`<r><sin-cerrar></r>`))
	assert.Error(t, err)
}
