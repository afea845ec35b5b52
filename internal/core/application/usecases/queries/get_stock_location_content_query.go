package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetStockLocationContentQueryIsNotConstructed = errors.New(
	"GetStockLocationContentQuery must be created via NewGetStockLocationContentQuery constructor",
)

// GetStockLocationContentQuery lists a location and every location below it.
type GetStockLocationContentQuery struct {
	locationID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetStockLocationContentQuery(locationID kernel.UUID) (GetStockLocationContentQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetStockLocationContentQuery{}, err
	}
	return GetStockLocationContentQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStockLocationContentQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLocationContentQueryIsNotConstructed)
}

func (q GetStockLocationContentQuery) LocationID() kernel.UUID {
	return q.locationID
}

// GetStockLocationContentQueryResponse holds the root first, then its descendants level
// by level.
type GetStockLocationContentQueryResponse struct {
	LocationIDs []kernel.UUID
}
