// Package stockmoves books the consume and produce stock moves of manufacturing orders.
package stockmoves

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/stockmove"
	"production/internal/core/ports"
	"production/internal/pkg/clock"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var _ ports.StockMoveService = (*StockMoveService)(nil)

// StockMoveService keeps the stock moves of an order in line with its product lists.
// Consume moves are the order's "in" moves, produce moves its "out" moves.
type StockMoveService struct {
	moves ports.StockMoveRepository
	clock clock.Clock
}

func NewStockMoveService(moves ports.StockMoveRepository, clk clock.Clock) (*StockMoveService, error) {
	var errRepo, errClock error
	if moves == nil {
		errRepo = errs.NewValueIsRequiredError("stockMoveRepository")
	}
	if clk == nil {
		errClock = errs.NewValueIsRequiredError("clock")
	}
	if err := errors.Join(errRepo, errClock); err != nil {
		return nil, err
	}
	return &StockMoveService{moves: moves, clock: clk}, nil
}

// CreateToConsumeStockMove plans one consume move holding the whole to-consume list.
func (s *StockMoveService) CreateToConsumeStockMove(ctx context.Context, order *manuforder.ManufOrder) error {
	move, err := s.create(ctx, order, stockmove.Consume, order.ToConsumeProdProducts())
	if err != nil {
		return err
	}
	order.AddInStockMove(move.ID())
	return nil
}

// CreateToProduceStockMove plans one produce move holding the whole to-produce list.
func (s *StockMoveService) CreateToProduceStockMove(ctx context.Context, order *manuforder.ManufOrder) error {
	move, err := s.create(ctx, order, stockmove.Produce, order.ToProduceProdProducts())
	if err != nil {
		return err
	}
	order.AddOutStockMove(move.ID())
	return nil
}

// RealizeStockMovesAndCreateOneEmpty realizes the open consume moves among moveIDs and
// plans an empty consume move for whatever is consumed next.
func (s *StockMoveService) RealizeStockMovesAndCreateOneEmpty(
	ctx context.Context,
	order *manuforder.ManufOrder,
	moveIDs []kernel.UUID,
) (kernel.UUID, error) {
	for _, id := range moveIDs {
		move, err := s.moves.Get(ctx, id)
		if err != nil {
			return kernel.UUID{}, err
		}
		if err = s.realize(ctx, order, move); err != nil {
			return kernel.UUID{}, err
		}
	}

	empty, err := s.create(ctx, order, stockmove.Consume, nil)
	if err != nil {
		return kernel.UUID{}, err
	}
	return empty.ID(), nil
}

// Finish realizes every open move of the order.
func (s *StockMoveService) Finish(ctx context.Context, order *manuforder.ManufOrder) error {
	return s.realizeOpen(ctx, order)
}

// PartialFinish realizes every open move, records the difference between what was consumed
// and what was planned, and plans new moves for the quantities still to consume or produce.
func (s *StockMoveService) PartialFinish(ctx context.Context, order *manuforder.ManufOrder) error {
	if err := s.realizeOpen(ctx, order); err != nil {
		return err
	}

	consumed := sumLines(order.ConsumedStockMoveLines())
	produced := sumLines(order.ProducedStockMoveLines())

	var diff []manuforder.ProdProduct
	for _, p := range order.ToConsumeProdProducts() {
		if d := consumed[p.ProductID].Sub(p.Qty); !d.IsZero() {
			diff = append(diff, manuforder.ProdProduct{ProductID: p.ProductID, Qty: d, Unit: p.Unit})
		}
	}
	order.SetDiffConsumeProdProducts(diff)

	if remaining := remainingQty(order.ToConsumeProdProducts(), consumed); len(remaining) > 0 {
		move, err := s.create(ctx, order, stockmove.Consume, remaining)
		if err != nil {
			return err
		}
		order.AddInStockMove(move.ID())
	}
	if remaining := remainingQty(order.ToProduceProdProducts(), produced); len(remaining) > 0 {
		move, err := s.create(ctx, order, stockmove.Produce, remaining)
		if err != nil {
			return err
		}
		order.AddOutStockMove(move.ID())
	}
	return nil
}

// Cancel cancels every open move of the order. Realized moves are kept as they are.
func (s *StockMoveService) Cancel(ctx context.Context, order *manuforder.ManufOrder) error {
	for _, direction := range []stockmove.Direction{stockmove.Consume, stockmove.Produce} {
		moves, err := s.moves.GetByManufOrder(ctx, order.ID(), direction)
		if err != nil {
			return err
		}
		for _, move := range moves {
			if !move.IsOpen() {
				continue
			}
			if err = move.Cancel(); err != nil {
				return err
			}
			if err = s.moves.Update(ctx, move); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *StockMoveService) create(
	ctx context.Context,
	order *manuforder.ManufOrder,
	direction stockmove.Direction,
	products []manuforder.ProdProduct,
) (*stockmove.StockMove, error) {
	lines := make([]*stockmove.Line, 0, len(products))
	for _, p := range products {
		line, err := stockmove.NewLine(kernel.NewUUID(), p.ProductID, p.Qty, p.Unit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	move, err := stockmove.NewStockMove(kernel.NewUUID(), order.ID(), direction, lines)
	if err != nil {
		return nil, err
	}
	if err = s.moves.Add(ctx, move); err != nil {
		return nil, err
	}
	return move, nil
}

func (s *StockMoveService) realizeOpen(ctx context.Context, order *manuforder.ManufOrder) error {
	for _, direction := range []stockmove.Direction{stockmove.Consume, stockmove.Produce} {
		moves, err := s.moves.GetByManufOrder(ctx, order.ID(), direction)
		if err != nil {
			return err
		}
		for _, move := range moves {
			if err = s.realize(ctx, order, move); err != nil {
				return err
			}
		}
	}
	return nil
}

// realize books an open move and attaches its lines to the order. Closed moves are skipped.
func (s *StockMoveService) realize(ctx context.Context, order *manuforder.ManufOrder, move *stockmove.StockMove) error {
	if !move.IsOpen() {
		return nil
	}
	if err := move.Realize(s.clock.Now()); err != nil {
		return err
	}
	for _, line := range move.Lines() {
		if move.Direction() == stockmove.Consume {
			order.AttachConsumedLine(line)
		} else {
			order.AttachProducedLine(line)
		}
	}
	return s.moves.Update(ctx, move)
}

func sumLines(lines []*stockmove.Line) map[kernel.UUID]decimal.Decimal {
	sums := make(map[kernel.UUID]decimal.Decimal, len(lines))
	for _, l := range lines {
		sums[l.ProductID()] = sums[l.ProductID()].Add(l.Qty())
	}
	return sums
}

func remainingQty(planned []manuforder.ProdProduct, done map[kernel.UUID]decimal.Decimal) []manuforder.ProdProduct {
	var remaining []manuforder.ProdProduct
	for _, p := range planned {
		if left := p.Qty.Sub(done[p.ProductID]); left.IsPositive() {
			remaining = append(remaining, manuforder.ProdProduct{ProductID: p.ProductID, Qty: left, Unit: p.Unit})
		}
	}
	return remaining
}
