// Package productrepo persists the production view of products.
package productrepo

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code                string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name                string          `gorm:"type:varchar(255);not null"`
	Unit                string          `gorm:"type:varchar(64);not null"`
	PricingMethod       int             `gorm:"type:smallint;not null"`
	CostType            int             `gorm:"type:smallint;not null"`
	CostPrice           decimal.Decimal `gorm:"type:numeric;not null"`
	LastProductionPrice decimal.Decimal `gorm:"type:numeric;not null"`
	SalePrice           decimal.Decimal `gorm:"type:numeric;not null"`
	ManagPriceCoef      decimal.Decimal `gorm:"type:numeric;not null"`
	AutoUpdateSalePrice bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	prices := p.Prices()
	return ProductDTO{
		ID:                  p.ID().Bytes(),
		Code:                p.Code(),
		Name:                p.Name(),
		Unit:                p.Unit(),
		PricingMethod:       int(prices.PricingMethod),
		CostType:            int(prices.CostType),
		CostPrice:           prices.CostPrice,
		LastProductionPrice: prices.LastProductionPrice,
		SalePrice:           prices.SalePrice,
		ManagPriceCoef:      prices.ManagPriceCoef,
		AutoUpdateSalePrice: prices.AutoUpdateSalePrice,
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Code, dto.Name, dto.Unit, product.Prices{
		PricingMethod:       product.PricingMethod(dto.PricingMethod),
		CostType:            product.CostType(dto.CostType),
		CostPrice:           dto.CostPrice,
		LastProductionPrice: dto.LastProductionPrice,
		SalePrice:           dto.SalePrice,
		ManagPriceCoef:      dto.ManagPriceCoef,
		AutoUpdateSalePrice: dto.AutoUpdateSalePrice,
	})
}
