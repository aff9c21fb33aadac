// Package xmlexport exporta el reporte del almacén a XML y calcula un digest estable
// sobre su forma canónica (C14N).
package xmlexport

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/almacen-ggc/internal/application/dto"
)

// Namespace espacio de nombres del documento exportado.
const Namespace = "urn:ggc:warehouse:1"

// Export serializa el reporte. Los importes se escriben con su valor exacto.
func Export(r *dto.WarehouseReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Warehouse")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("date", strconv.Itoa(r.Date))

	balances := root.CreateElement("Balances")
	balances.CreateElement("Available").SetText(r.AvailableBalance.String())
	balances.CreateElement("Accounting").SetText(r.AccountingBalance.String())

	products := root.CreateElement("Products")
	for _, p := range r.Products {
		el := products.CreateElement("Product")
		el.CreateAttr("id", p.ID)
		el.CreateAttr("maxPrice", p.MaxPrice.String())
		el.CreateAttr("stock", strconv.Itoa(p.Stock))
		if p.Derived {
			recipe := el.CreateElement("Recipe")
			recipe.CreateAttr("costFactor", p.CostFactor.String())
			recipe.SetText(p.Recipe)
		}
	}

	batches := root.CreateElement("Batches")
	for _, b := range r.Batches {
		el := batches.CreateElement("Batch")
		el.CreateAttr("product", b.ProductID)
		el.CreateAttr("partner", b.PartnerID)
		el.CreateAttr("unitPrice", b.UnitPrice.String())
		el.CreateAttr("quantity", strconv.Itoa(b.Quantity))
	}

	partners := root.CreateElement("Partners")
	for _, p := range r.Partners {
		el := partners.CreateElement("Partner")
		el.CreateAttr("id", p.ID)
		el.CreateAttr("tier", p.Tier)
		el.CreateAttr("points", p.Points.String())
		el.CreateElement("Name").SetText(p.Name)
		el.CreateElement("Address").SetText(p.Address)
		totals := el.CreateElement("Totals")
		totals.CreateAttr("purchases", p.Purchases.String())
		totals.CreateAttr("sales", p.Sales.String())
		totals.CreateAttr("paidSales", p.PaidSales.String())
	}

	txs := root.CreateElement("Transactions")
	for _, t := range r.Transactions {
		el := txs.CreateElement("Transaction")
		el.CreateAttr("id", strconv.Itoa(t.ID))
		el.CreateAttr("kind", t.Kind)
		el.CreateAttr("partner", t.PartnerID)
		el.CreateAttr("product", t.ProductID)
		el.CreateAttr("quantity", strconv.Itoa(t.Quantity))
		el.CreateAttr("base", t.BaseCost.String())
		el.CreateAttr("current", t.Current.String())
		el.CreateAttr("paid", strconv.FormatBool(t.Paid))
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: escribir: %w", err)
	}
	return out.Bytes(), nil
}

// Canonicalize devuelve la forma canónica C14N del documento.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	return out, nil
}

// Digest blake2b-256 (hex) de la forma canónica del documento.
func Digest(data []byte) (string, error) {
	canonical, err := Canonicalize(data)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
