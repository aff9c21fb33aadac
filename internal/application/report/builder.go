package report

import (
	"github.com/jhoicas/almacen-ggc/internal/application/dto"
	"github.com/jhoicas/almacen-ggc/internal/application/warehouse"
	"github.com/jhoicas/almacen-ggc/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Source consultas del almacén necesarias para armar el reporte.
type Source interface {
	Date() int
	AvailableBalance() decimal.Decimal
	AccountingBalance() decimal.Decimal
	Products() []*entity.Product
	ProductTotalQuantity(id string) (int, error)
	Batches() []*entity.Batch
	Partners() []*entity.Partner
	PartnerTotals(partnerID string) (warehouse.PartnerTotals, error)
	Transactions() []*entity.Transaction
	CurrentPrice(transactionID int) (decimal.Decimal, error)
}

// Build arma la vista completa del almacén a la fecha actual.
func Build(src Source) (*dto.WarehouseReport, error) {
	r := &dto.WarehouseReport{
		Date:              src.Date(),
		AvailableBalance:  src.AvailableBalance(),
		AccountingBalance: src.AccountingBalance(),
	}
	for _, p := range src.Products() {
		stock, err := src.ProductTotalQuantity(p.ID)
		if err != nil {
			return nil, err
		}
		row := dto.ProductRow{ID: p.ID, MaxPrice: p.MaxPrice, Stock: stock, Derived: p.IsDerived(), Line: ProductLine(p, stock)}
		if p.IsDerived() {
			row.CostFactor = p.Recipe.CostFactor
			row.Recipe = p.Recipe.String()
		}
		r.Products = append(r.Products, row)
	}
	for _, b := range src.Batches() {
		r.Batches = append(r.Batches, dto.BatchRow{
			ProductID: b.Product.ID,
			PartnerID: b.Partner.ID,
			UnitPrice: b.UnitPrice,
			Quantity:  b.Quantity,
			Line:      BatchLine(b),
		})
	}
	for _, p := range src.Partners() {
		totals, err := src.PartnerTotals(p.ID)
		if err != nil {
			return nil, err
		}
		r.Partners = append(r.Partners, dto.PartnerRow{
			ID:        p.ID,
			Name:      p.Name,
			Address:   p.Address,
			Tier:      p.Tier.String(),
			Points:    p.Points,
			Purchases: totals.Purchases,
			Sales:     totals.Sales,
			PaidSales: totals.PaidSales,
			Line:      PartnerLine(p, totals.Purchases, totals.Sales, totals.PaidSales),
		})
	}
	for _, t := range src.Transactions() {
		current, err := src.CurrentPrice(t.ID)
		if err != nil {
			return nil, err
		}
		r.Transactions = append(r.Transactions, dto.TransactionRow{
			ID:        t.ID,
			Kind:      t.Kind.String(),
			PartnerID: t.Partner.ID,
			ProductID: t.Product.ID,
			Quantity:  t.Quantity,
			BaseCost:  t.BaseCost,
			Current:   current,
			Paid:      t.Paid,
			Line:      TransactionLine(t, current),
		})
	}
	return r, nil
}
