// Package ports defines the contracts between the production core and its adapters:
// repositories, the unit of work and the collaborators the workflow drives.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
)

// ManufOrderRepository defines the persistence contract for manufacturing orders.
// Operation orders, product lists and stock move references are stored with the order.
type ManufOrderRepository interface {
	// Add persists a new manufacturing order together with its operation orders.
	Add(ctx context.Context, aggregate *manuforder.ManufOrder) error

	// Update persists the order and its operation orders. Operation orders without an
	// identifier are inserted and get their identifier assigned.
	Update(ctx context.Context, aggregate *manuforder.ManufOrder) error

	// Get loads the complete order. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*manuforder.ManufOrder, error)

	// GetAllInStatus returns every order in the given status.
	GetAllInStatus(ctx context.Context, status manuforder.Status) ([]*manuforder.ManufOrder, error)
}

// CancelReasonRepository looks cancel reasons up by code.
type CancelReasonRepository interface {
	GetByCode(ctx context.Context, code string) (manuforder.CancelReason, error)
}
