package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

type GetStockLocationContentQueryHandler struct {
	locations ports.StockLocationRepository
}

func NewGetStockLocationContentQueryHandler(locations ports.StockLocationRepository) GetStockLocationContentQueryHandler {
	return GetStockLocationContentQueryHandler{locations: locations}
}

// Handle walks the location tree breadth first, one query per level. Each location is
// listed once even if the stored tree loops back on itself.
func (h GetStockLocationContentQueryHandler) Handle(
	ctx context.Context,
	query GetStockLocationContentQuery,
) (GetStockLocationContentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStockLocationContentQueryResponse{}, err
	}

	root, err := h.locations.Get(ctx, query.LocationID())
	if err != nil {
		return GetStockLocationContentQueryResponse{}, err
	}

	visited := map[kernel.UUID]struct{}{root.ID(): {}}
	ids := []kernel.UUID{root.ID()}
	level := []kernel.UUID{root.ID()}
	for len(level) > 0 {
		children, err := h.locations.GetChildren(ctx, level)
		if err != nil {
			return GetStockLocationContentQueryResponse{}, err
		}

		next := make([]kernel.UUID, 0, len(children))
		for _, child := range children {
			if _, seen := visited[child.ID()]; seen {
				continue
			}
			visited[child.ID()] = struct{}{}
			next = append(next, child.ID())
		}
		ids = append(ids, next...)
		level = next
	}

	return GetStockLocationContentQueryResponse{LocationIDs: ids}, nil
}
