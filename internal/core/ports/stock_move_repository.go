package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stockmove"
)

// StockMoveRepository stores stock moves with their lines.
type StockMoveRepository interface {
	Add(ctx context.Context, move *stockmove.StockMove) error

	// Update persists the move status and the line back references.
	Update(ctx context.Context, move *stockmove.StockMove) error

	Get(ctx context.Context, id kernel.UUID) (*stockmove.StockMove, error)

	// GetByManufOrder returns the moves of an order in one direction, oldest first.
	GetByManufOrder(
		ctx context.Context,
		manufOrderID kernel.UUID,
		direction stockmove.Direction,
	) ([]*stockmove.StockMove, error)
}
