package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stocklocation"
)

type StockLocationRepository interface {
	Add(ctx context.Context, location *stocklocation.StockLocation) error
	Get(ctx context.Context, id kernel.UUID) (*stocklocation.StockLocation, error)

	// GetChildren returns the direct children of every location in parentIDs.
	GetChildren(ctx context.Context, parentIDs []kernel.UUID) ([]*stocklocation.StockLocation, error)
}
