package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"
)

type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) error
	Update(ctx context.Context, p *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
