package ports

import (
	"context"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/kernel"
)

type CostSheetRepository interface {
	Add(ctx context.Context, sheet *costsheet.CostSheet) error
	GetByManufOrder(ctx context.Context, manufOrderID kernel.UUID) ([]*costsheet.CostSheet, error)
}
