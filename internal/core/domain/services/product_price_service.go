package services

import (
	"production/internal/core/domain/model/product"
	"production/internal/pkg/rounding"

	"github.com/shopspring/decimal"
)

// ProductPriceService holds the pricing rules applied when production is declared.
type ProductPriceService struct{}

func NewProductPriceService() ProductPriceService {
	return ProductPriceService{}
}

// OneUnitProductionPrice divides the order cost by the produced quantity, rounded half
// to even at scale decimal places. A zero quantity yields zero.
func (ProductPriceService) OneUnitProductionPrice(costPrice, qty decimal.Decimal, scale int32) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	return rounding.DivHalfEven(costPrice, qty, scale)
}

// UpdateSalePrice sets the sale price to cost price times the management coefficient,
// rounded half up at scale decimal places. A zero coefficient leaves the sale price alone.
func (ProductPriceService) UpdateSalePrice(p *product.Product, scale int32) {
	coef := p.ManagPriceCoef()
	if coef.IsZero() {
		return
	}
	p.ApplySalePrice(p.CostPrice().Mul(coef).Round(scale))
}
