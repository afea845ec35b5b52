package product

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// PricingMethod selects where the last production price comes from on finish.
type PricingMethod int

const (
	PricingMethodUnset PricingMethod = iota
	PricingMethodForecast
	PricingMethodReal
)

func (m PricingMethod) String() string {
	switch m {
	case PricingMethodForecast:
		return "Forecast"
	case PricingMethodReal:
		return "Real"
	case PricingMethodUnset:
		return "Unset"
	default:
		return "Unknown"
	}
}

// CostType selects which price feeds the product cost price.
type CostType int

const (
	CostTypeUnknown CostType = iota
	CostTypeStandard
	CostTypeLastPurchasePrice
	CostTypeAveragePrice
	CostTypeLastProductionPrice
)

// Product is the production view of a product.
type Product struct {
	id                  kernel.UUID
	code                string
	name                string
	unit                string
	pricingMethod       PricingMethod
	costType            CostType
	costPrice           decimal.Decimal
	lastProductionPrice decimal.Decimal
	salePrice           decimal.Decimal
	managPriceCoef      decimal.Decimal
	autoUpdateSalePrice bool
	isConstructed       bool
}

// NewProduct creates a product with standard cost type, unset pricing method and a
// management price coefficient of 1.
func NewProduct(id kernel.UUID, code, name, unit string) (*Product, error) {
	p := &Product{
		code:           code,
		name:           name,
		unit:           unit,
		costType:       CostTypeStandard,
		managPriceCoef: decimal.NewFromInt(1),
		isConstructed:  true,
	}
	if err := errors.Join(p.setID(id), p.setCode(code)); err != nil {
		return nil, err
	}
	return p, nil
}

// Prices groups the persisted pricing state of a product.
type Prices struct {
	PricingMethod       PricingMethod
	CostType            CostType
	CostPrice           decimal.Decimal
	LastProductionPrice decimal.Decimal
	SalePrice           decimal.Decimal
	ManagPriceCoef      decimal.Decimal
	AutoUpdateSalePrice bool
}

// RestoreProduct rebuilds a product from persistence.
func RestoreProduct(id kernel.UUID, code, name, unit string, prices Prices) (*Product, error) {
	p, err := NewProduct(id, code, name, unit)
	if err != nil {
		return nil, err
	}
	if prices.PricingMethod < PricingMethodUnset || prices.PricingMethod > PricingMethodReal {
		return nil, errs.NewValueIsOutOfRangeError("pricingMethod", int(prices.PricingMethod),
			int(PricingMethodUnset), int(PricingMethodReal))
	}
	p.pricingMethod = prices.PricingMethod
	p.costType = prices.CostType
	p.costPrice = prices.CostPrice
	p.lastProductionPrice = prices.LastProductionPrice
	p.salePrice = prices.SalePrice
	p.managPriceCoef = prices.ManagPriceCoef
	p.autoUpdateSalePrice = prices.AutoUpdateSalePrice
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID                      { return p.id }
func (p *Product) Code() string                         { return p.code }
func (p *Product) Name() string                         { return p.name }
func (p *Product) Unit() string                         { return p.unit }
func (p *Product) PricingMethod() PricingMethod         { return p.pricingMethod }
func (p *Product) CostType() CostType                   { return p.costType }
func (p *Product) CostPrice() decimal.Decimal           { return p.costPrice }
func (p *Product) LastProductionPrice() decimal.Decimal { return p.lastProductionPrice }
func (p *Product) SalePrice() decimal.Decimal           { return p.salePrice }
func (p *Product) ManagPriceCoef() decimal.Decimal      { return p.managPriceCoef }
func (p *Product) AutoUpdateSalePrice() bool            { return p.autoUpdateSalePrice }

// Prices returns the pricing state for persistence.
func (p *Product) Prices() Prices {
	return Prices{
		PricingMethod:       p.pricingMethod,
		CostType:            p.costType,
		CostPrice:           p.costPrice,
		LastProductionPrice: p.lastProductionPrice,
		SalePrice:           p.salePrice,
		ManagPriceCoef:      p.managPriceCoef,
		AutoUpdateSalePrice: p.autoUpdateSalePrice,
	}
}

// ConfigurePricing sets the pricing method and cost type.
func (p *Product) ConfigurePricing(method PricingMethod, costType CostType, autoUpdateSalePrice bool) {
	p.pricingMethod = method
	p.costType = costType
	p.autoUpdateSalePrice = autoUpdateSalePrice
}

// SetCostPrice overwrites the cost price.
func (p *Product) SetCostPrice(price decimal.Decimal) {
	p.costPrice = price
}

// SetManagPriceCoef sets the coefficient applied to the cost price to obtain the sale price.
func (p *Product) SetManagPriceCoef(coef decimal.Decimal) error {
	if coef.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("managPriceCoef", fmt.Errorf("%s is negative", coef))
	}
	p.managPriceCoef = coef
	return nil
}

// RecordForecastProductionPrice stores the bill-of-materials cost price as the last
// production price. An unset pricing method becomes Forecast.
func (p *Product) RecordForecastProductionPrice(bomCostPrice decimal.Decimal) {
	if p.pricingMethod == PricingMethodUnset {
		p.pricingMethod = PricingMethodForecast
	}
	p.lastProductionPrice = bomCostPrice
}

// RecordRealProductionPrice stores a measured one-unit price. Zero prices are ignored.
func (p *Product) RecordRealProductionPrice(unitPrice decimal.Decimal) {
	if unitPrice.IsZero() {
		return
	}
	p.lastProductionPrice = unitPrice
}

// FollowLastProductionPrice copies the last production price into the cost price when the
// cost type asks for it. It reports whether the cost price changed source.
func (p *Product) FollowLastProductionPrice() bool {
	if p.costType != CostTypeLastProductionPrice {
		return false
	}
	p.costPrice = p.lastProductionPrice
	return true
}

// ApplySalePrice sets the sale price computed by the pricing service.
func (p *Product) ApplySalePrice(price decimal.Decimal) {
	p.salePrice = price
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = code
	return nil
}
