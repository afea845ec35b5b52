// Package costing computes the cost of manufacturing orders from the components they consume.
package costing

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var _ ports.CostSheetService = (*CostSheetService)(nil)

// CostSheetService values the components of an order at their current cost price.
type CostSheetService struct {
	products ports.ProductRepository
	sheets   ports.CostSheetRepository
	settings ports.AppSettings
}

func NewCostSheetService(
	products ports.ProductRepository,
	sheets ports.CostSheetRepository,
	settings ports.AppSettings,
) (*CostSheetService, error) {
	var errProducts, errSheets, errSettings error
	if products == nil {
		errProducts = errs.NewValueIsRequiredError("productRepository")
	}
	if sheets == nil {
		errSheets = errs.NewValueIsRequiredError("costSheetRepository")
	}
	if settings == nil {
		errSettings = errs.NewValueIsRequiredError("appSettings")
	}
	if err := errors.Join(errProducts, errSheets, errSettings); err != nil {
		return nil, err
	}
	return &CostSheetService{products: products, sheets: sheets, settings: settings}, nil
}

// ComputeCostPrice sums qty * cost price over the consumed stock move lines, or over the
// to-consume list when nothing was consumed yet, stores a cost sheet and updates the order
// cost price.
func (s *CostSheetService) ComputeCostPrice(
	ctx context.Context,
	order *manuforder.ManufOrder,
	mode costsheet.CalculationMode,
	asOf time.Time,
) (*costsheet.CostSheet, error) {
	components := consumedComponents(order)

	costPrices := make(map[kernel.UUID]decimal.Decimal)
	total := decimal.Zero
	for _, c := range components {
		price, ok := costPrices[c.ProductID]
		if !ok {
			p, err := s.products.Get(ctx, c.ProductID)
			if err != nil {
				return nil, err
			}
			price = p.CostPrice()
			costPrices[c.ProductID] = price
		}
		total = total.Add(c.Qty.Mul(price))
	}
	total = total.Round(s.settings.NbDecimalDigitForUnitPrice(ctx))

	sheet, err := costsheet.NewCostSheet(kernel.NewUUID(), order.ID(), mode, asOf, total)
	if err != nil {
		return nil, err
	}
	if err = s.sheets.Add(ctx, sheet); err != nil {
		return nil, err
	}
	order.SetCostPrice(total)
	return sheet, nil
}

func consumedComponents(order *manuforder.ManufOrder) []manuforder.ProdProduct {
	lines := order.ConsumedStockMoveLines()
	if len(lines) == 0 {
		return order.ToConsumeProdProducts()
	}
	components := make([]manuforder.ProdProduct, 0, len(lines))
	for _, l := range lines {
		components = append(components, manuforder.ProdProduct{ProductID: l.ProductID(), Qty: l.Qty(), Unit: l.Unit()})
	}
	return components
}
