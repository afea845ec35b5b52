package services_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"
	"production/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPriceService_OneUnitProductionPrice(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		qty      string
		scale    int32
		expected string
	}{
		{"exact division", "10", "4", 2, "2.5"},
		{"rounds down below half", "10", "3", 2, "3.33"},
		{"rounds up above half", "2", "3", 2, "0.67"},
		{"tie goes to even digit below", "1", "8", 2, "0.12"},
		{"tie goes to even digit above", "27", "200", 2, "0.14"},
		{"negative tie stays even", "-1", "8", 2, "-0.12"},
		{"negative tie rounds away from zero to even", "-27", "200", 2, "-0.14"},
		{"negative quantity", "2", "-3", 2, "-0.67"},
		{"scale zero tie to even", "5", "2", 0, "2"},
		{"scale zero tie to even above", "7", "2", 0, "4"},
		{"zero quantity", "100", "0", 2, "0"},
	}

	svc := services.NewProductPriceService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.OneUnitProductionPrice(
				decimal.RequireFromString(tt.cost),
				decimal.RequireFromString(tt.qty),
				tt.scale,
			)

			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestProductPriceService_UpdateSalePrice(t *testing.T) {
	newProduct := func(t *testing.T, cost, coef string) *product.Product {
		p, err := product.NewProduct(kernel.NewUUID(), "P", "P", "pcs")
		require.NoError(t, err)
		p.SetCostPrice(decimal.RequireFromString(cost))
		require.NoError(t, p.SetManagPriceCoef(decimal.RequireFromString(coef)))
		p.ApplySalePrice(decimal.NewFromInt(99))
		return p
	}
	svc := services.NewProductPriceService()

	t.Run("applies the coefficient", func(t *testing.T) {
		p := newProduct(t, "3", "1.5")
		svc.UpdateSalePrice(p, 2)
		assert.Equal(t, "4.5", p.SalePrice().String())
	})

	t.Run("rounds half up", func(t *testing.T) {
		p := newProduct(t, "10.005", "1")
		svc.UpdateSalePrice(p, 2)
		assert.Equal(t, "10.01", p.SalePrice().String())
	})

	t.Run("zero coefficient keeps the sale price", func(t *testing.T) {
		p := newProduct(t, "10", "0")
		svc.UpdateSalePrice(p, 2)
		assert.Equal(t, "99", p.SalePrice().String())
	})
}
