// Package stockmove models the physical stock movements a manufacturing order consumes
// from and produces into.
package stockmove

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrStockMoveIsNotConstructed = errors.New("StockMove must be created via NewStockMove or RestoreStockMove")

// Direction tells whether a move feeds components into production or takes finished
// products out of it.
type Direction int

const (
	DirectionUnknown Direction = iota
	Consume
	Produce
)

func (d Direction) String() string {
	switch d {
	case Consume:
		return "Consume"
	case Produce:
		return "Produce"
	default:
		return "Unknown"
	}
}

// Status of a stock move. Realized and Canceled are terminal.
type Status int

const (
	StatusUnknown Status = iota
	Draft
	Planned
	Realized
	Canceled
)

func (s Status) String() string {
	switch s {
	case Draft:
		return "Draft"
	case Planned:
		return "Planned"
	case Realized:
		return "Realized"
	case Canceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Line is one product quantity of a stock move. Once realized it points back to the
// manufacturing order that consumed or produced it.
type Line struct {
	id                   kernel.UUID
	productID            kernel.UUID
	qty                  decimal.Decimal
	unit                 string
	consumedManufOrderID *kernel.UUID
	producedManufOrderID *kernel.UUID
}

// NewLine creates a line with no manufacturing order back reference.
func NewLine(id, productID kernel.UUID, qty decimal.Decimal, unit string) (*Line, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if qty.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%s is negative", qty))
	}
	return &Line{id: id, productID: productID, qty: qty, unit: unit}, nil
}

// RestoreLine rebuilds a line with its back references.
func RestoreLine(
	id, productID kernel.UUID,
	qty decimal.Decimal,
	unit string,
	consumedBy, producedBy *kernel.UUID,
) (*Line, error) {
	l, err := NewLine(id, productID, qty, unit)
	if err != nil {
		return nil, err
	}
	l.consumedManufOrderID = consumedBy
	l.producedManufOrderID = producedBy
	return l, nil
}

func (l *Line) ID() kernel.UUID                    { return l.id }
func (l *Line) ProductID() kernel.UUID             { return l.productID }
func (l *Line) Qty() decimal.Decimal               { return l.qty }
func (l *Line) Unit() string                       { return l.unit }
func (l *Line) ConsumedManufOrderID() *kernel.UUID { return l.consumedManufOrderID }
func (l *Line) ProducedManufOrderID() *kernel.UUID { return l.producedManufOrderID }

func (l *Line) MarkConsumedBy(manufOrderID kernel.UUID) {
	l.consumedManufOrderID = &manufOrderID
}

func (l *Line) MarkProducedBy(manufOrderID kernel.UUID) {
	l.producedManufOrderID = &manufOrderID
}

// DetachConsumedManufOrder clears the consumed-by back reference.
func (l *Line) DetachConsumedManufOrder() {
	l.consumedManufOrderID = nil
}

// DetachProducedManufOrder clears the produced-by back reference.
func (l *Line) DetachProducedManufOrder() {
	l.producedManufOrderID = nil
}

// StockMove is a transfer of product quantities tied to a manufacturing order.
type StockMove struct {
	id            kernel.UUID
	manufOrderID  kernel.UUID
	direction     Direction
	status        Status
	lines         []*Line
	realizedAt    *time.Time
	isConstructed bool
}

// NewStockMove creates a Planned move for the order.
func NewStockMove(id, manufOrderID kernel.UUID, direction Direction, lines []*Line) (*StockMove, error) {
	if err := errors.Join(id.Validate(), manufOrderID.Validate()); err != nil {
		return nil, err
	}
	if direction != Consume && direction != Produce {
		return nil, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a valid direction", direction))
	}
	return &StockMove{
		id:            id,
		manufOrderID:  manufOrderID,
		direction:     direction,
		status:        Planned,
		lines:         lines,
		isConstructed: true,
	}, nil
}

// RestoreStockMove rebuilds a move from persistence.
func RestoreStockMove(
	id, manufOrderID kernel.UUID,
	direction Direction,
	status Status,
	lines []*Line,
	realizedAt *time.Time,
) (*StockMove, error) {
	m, err := NewStockMove(id, manufOrderID, direction, lines)
	if err != nil {
		return nil, err
	}
	if status <= StatusUnknown || status > Canceled {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", status))
	}
	m.status = status
	m.realizedAt = realizedAt
	return m, nil
}

func (m *StockMove) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrStockMoveIsNotConstructed
	}
	return nil
}

func (m *StockMove) ID() kernel.UUID           { return m.id }
func (m *StockMove) ManufOrderID() kernel.UUID { return m.manufOrderID }
func (m *StockMove) Direction() Direction      { return m.direction }
func (m *StockMove) Status() Status            { return m.status }
func (m *StockMove) Lines() []*Line            { return m.lines }
func (m *StockMove) RealizedAt() *time.Time    { return m.realizedAt }

// IsOpen reports whether the move can still be realized or canceled.
func (m *StockMove) IsOpen() bool {
	return m.status == Draft || m.status == Planned
}

// Realize books the move and marks every line with the manufacturing order back reference.
func (m *StockMove) Realize(now time.Time) error {
	if !m.IsOpen() {
		return errs.NewValueIsInvalidErrorWithCause("stock move status is invalid",
			fmt.Errorf("%s is not a valid status to realize", m.status))
	}
	for _, l := range m.lines {
		if m.direction == Consume {
			l.MarkConsumedBy(m.manufOrderID)
		} else {
			l.MarkProducedBy(m.manufOrderID)
		}
	}
	m.status = Realized
	m.realizedAt = &now
	return nil
}

// Cancel cancels an open move.
func (m *StockMove) Cancel() error {
	if !m.IsOpen() {
		return errs.NewValueIsInvalidErrorWithCause("stock move status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", m.status))
	}
	m.status = Canceled
	return nil
}
