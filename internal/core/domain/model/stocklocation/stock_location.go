// Package stocklocation models the warehouse location tree.
package stocklocation

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// StockLocation is a node of the location tree. Root locations have no parent.
type StockLocation struct {
	id       kernel.UUID
	name     string
	parentID *kernel.UUID
}

func NewStockLocation(id kernel.UUID, name string, parentID *kernel.UUID) (*StockLocation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if parentID != nil && parentID.IsEqual(id) {
		return nil, errs.NewValueIsInvalidError("a location cannot be its own parent")
	}
	return &StockLocation{id: id, name: name, parentID: parentID}, nil
}

func (l *StockLocation) ID() kernel.UUID        { return l.id }
func (l *StockLocation) Name() string           { return l.name }
func (l *StockLocation) ParentID() *kernel.UUID { return l.parentID }
