// Package workflow drives the lifecycle of manufacturing orders: planning, start, pause,
// resume, full and partial finish, and cancellation. Every transition runs in a single unit
// of work together with the stock moves, cost sheets, product prices and notifications it
// triggers.
package workflow

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/message"
	"production/internal/core/domain/model/product"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/clock"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MsgCancelReasonRequired = "a cancel reason is required to cancel a manufacturing order"
	MsgMissingTemplate      = "no message template is configured for manufacturing order notifications"
)

// Deps are the collaborators of ManufOrderWorkflow. Logger and Prices are optional.
type Deps struct {
	UnitOfWork  ports.UnitOfWork
	Orders      ports.ManufOrderRepository
	Products    ports.ProductRepository
	Operations  services.OperationOrderWorkflow
	ManufOrders ports.ManufOrderService
	StockMoves  ports.StockMoveService
	CostSheets  ports.CostSheetService
	Messages    ports.MessageService
	Settings    ports.AppSettings
	Prices      services.ProductPriceService
	Clock       clock.Clock
	Logger      *zap.Logger
}

func (d Deps) validate() error {
	required := []struct {
		name    string
		missing bool
	}{
		{"unitOfWork", d.UnitOfWork == nil},
		{"manufOrderRepository", d.Orders == nil},
		{"productRepository", d.Products == nil},
		{"operationOrderWorkflow", d.Operations == nil},
		{"manufOrderService", d.ManufOrders == nil},
		{"stockMoveService", d.StockMoves == nil},
		{"costSheetService", d.CostSheets == nil},
		{"messageService", d.Messages == nil},
		{"appSettings", d.Settings == nil},
		{"clock", d.Clock == nil},
	}

	var missing []error
	for _, r := range required {
		if r.missing {
			missing = append(missing, errs.NewValueIsRequiredError(r.name))
		}
	}
	return errors.Join(missing...)
}

// ManufOrderWorkflow is stateless; all state lives in the orders and the collaborators.
type ManufOrderWorkflow struct {
	uow         ports.UnitOfWork
	orders      ports.ManufOrderRepository
	products    ports.ProductRepository
	operations  services.OperationOrderWorkflow
	manufOrders ports.ManufOrderService
	stockMoves  ports.StockMoveService
	costSheets  ports.CostSheetService
	messages    ports.MessageService
	settings    ports.AppSettings
	prices      services.ProductPriceService
	clock       clock.Clock
	logger      *zap.Logger
}

func NewManufOrderWorkflow(d Deps) (*ManufOrderWorkflow, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManufOrderWorkflow{
		uow:         d.UnitOfWork,
		orders:      d.Orders,
		products:    d.Products,
		operations:  d.Operations,
		manufOrders: d.ManufOrders,
		stockMoves:  d.StockMoves,
		costSheets:  d.CostSheets,
		messages:    d.Messages,
		settings:    d.Settings,
		prices:      d.Prices,
		clock:       d.Clock,
		logger:      logger.Named("manuf-order-workflow"),
	}, nil
}

// Plan assigns the sequence, prepares operation orders and product lists when missing,
// schedules every operation order, creates the stock moves and moves the order to Planned.
func (w *ManufOrderWorkflow) Plan(ctx context.Context, order *manuforder.ManufOrder) (*manuforder.ManufOrder, error) {
	if _, err := order.Status().Plan(); err != nil {
		return nil, err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		if manuforder.IsEmptyOrDraftSeq(order.Seq()) {
			seq, err := w.manufOrders.NextManufOrderSeq(ctx, order)
			if err != nil {
				return err
			}
			if err = order.AssignSeq(seq); err != nil {
				return err
			}
		}

		if len(order.OperationOrders()) == 0 {
			if err := w.manufOrders.PreFillOperations(ctx, order); err != nil {
				return err
			}
		}
		if !order.IsConsProOnOperation() && len(order.ToConsumeProdProducts()) == 0 {
			if err := w.manufOrders.CreateToConsumeProdProducts(ctx, order); err != nil {
				return err
			}
		}
		if len(order.ToProduceProdProducts()) == 0 {
			if err := w.manufOrders.CreateToProduceProdProducts(ctx, order); err != nil {
				return err
			}
		}

		if order.PlannedStartDateT() == nil {
			order.SetPlannedStartDateT(w.clock.Now())
		}
		for _, op := range order.SortedOperationOrders() {
			if err := w.operations.Plan(order, op); err != nil {
				return err
			}
		}
		order.SetPlannedEndDateT(w.ComputePlannedEndDateT(order))
		order.InheritUnitFromBillOfMaterial()

		if !order.IsConsProOnOperation() {
			if err := w.stockMoves.CreateToConsumeStockMove(ctx, order); err != nil {
				return err
			}
		}
		if err := w.stockMoves.CreateToProduceStockMove(ctx, order); err != nil {
			return err
		}

		if err := order.Plan(); err != nil {
			return err
		}
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	w.logger.Info("manufacturing order planned", w.fields(order)...)
	return order, nil
}

// Start records the real start, realizes the consume moves when the process books them at
// start, and moves the order to InProgress.
func (w *ManufOrderWorkflow) Start(ctx context.Context, order *manuforder.ManufOrder) error {
	if _, err := order.Status().Start(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		now := w.clock.Now()

		if process := order.ProdProcess(); process != nil && process.RealizeOrder == manuforder.RealizeAtStart {
			moveID, err := w.stockMoves.RealizeStockMovesAndCreateOneEmpty(ctx, order, order.InStockMoveIDs())
			if err != nil {
				return err
			}
			order.AddInStockMove(moveID)
		}

		if err := order.Start(now); err != nil {
			return err
		}
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order started", w.fields(order)...)
	return nil
}

// Pause puts the running operation orders and the order on stand by.
func (w *ManufOrderWorkflow) Pause(ctx context.Context, order *manuforder.ManufOrder) error {
	if _, err := order.Status().Pause(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		for _, op := range order.OperationOrders() {
			if op.Status() != manuforder.OperationInProgress {
				continue
			}
			if err := w.operations.Pause(op); err != nil {
				return err
			}
		}
		if err := order.Pause(); err != nil {
			return err
		}
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order paused", w.fields(order)...)
	return nil
}

// Resume restarts the operation orders on stand by and the order.
func (w *ManufOrderWorkflow) Resume(ctx context.Context, order *manuforder.ManufOrder) error {
	if _, err := order.Status().Resume(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		for _, op := range order.OperationOrders() {
			if op.Status() != manuforder.OperationStandBy {
				continue
			}
			if err := w.operations.Resume(op); err != nil {
				return err
			}
		}
		if err := order.Resume(); err != nil {
			return err
		}
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order resumed", w.fields(order)...)
	return nil
}

// Finish completes every remaining operation order, computes the final cost sheet, updates
// the product prices, realizes the stock moves and moves the order to Finished. When the
// supply chain settings ask for it, a notification is sent as part of the same unit.
func (w *ManufOrderWorkflow) Finish(ctx context.Context, order *manuforder.ManufOrder) error {
	if _, err := order.Status().Finish(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		for _, op := range order.OperationOrders() {
			if op.Status() == manuforder.OperationFinished {
				continue
			}
			if op.Status() != manuforder.OperationInProgress && op.Status() != manuforder.OperationStandBy {
				if err := w.operations.Start(op); err != nil {
					return err
				}
			}
			if err := w.operations.Finish(op); err != nil {
				return err
			}
		}

		if _, err := w.costSheets.ComputeCostPrice(ctx, order, costsheet.EndOfProduction, clock.Today(w.clock)); err != nil {
			return err
		}

		if err := w.updateProductPrices(ctx, order); err != nil {
			return err
		}

		if err := w.stockMoves.Finish(ctx, order); err != nil {
			return err
		}
		if err := order.Finish(w.clock.Now()); err != nil {
			return err
		}
		if err := w.orders.Update(ctx, order); err != nil {
			return err
		}

		supplychain, err := w.settings.Supplychain(ctx)
		if err != nil {
			return err
		}
		if supplychain != nil && supplychain.FinishMoAutomaticEmail {
			return w.sendMail(ctx, order, supplychain.FinishMoMessageTemplate)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order finished",
		append(w.fields(order), zap.Int64("endTimeDifference", order.EndTimeDifference()))...)
	return nil
}

// PartialFinish declares the production done so far: cost sheet in partial mode, realized
// stock moves and the remaining quantities planned again. The order status is unchanged.
func (w *ManufOrderWorkflow) PartialFinish(ctx context.Context, order *manuforder.ManufOrder) error {
	if err := order.Status().ValidatePartialFinish(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		if order.IsConsProOnOperation() {
			for _, op := range order.OperationOrders() {
				if op.Status() != manuforder.OperationPlanned {
					continue
				}
				if err := w.operations.Start(op); err != nil {
					return err
				}
			}
		}

		if _, err := w.costSheets.ComputeCostPrice(
			ctx, order, costsheet.PartialEndOfProduction, clock.Today(w.clock),
		); err != nil {
			return err
		}
		if err := w.stockMoves.PartialFinish(ctx, order); err != nil {
			return err
		}
		if err := w.orders.Update(ctx, order); err != nil {
			return err
		}

		supplychain, err := w.settings.Supplychain(ctx)
		if err != nil {
			return err
		}
		if supplychain != nil && supplychain.PartFinishMoAutomaticEmail {
			return w.sendMail(ctx, order, supplychain.PartFinishMoMessageTemplate)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order partially finished", w.fields(order)...)
	return nil
}

// Cancel cancels the operation orders and stock moves, detaches the order from the stock
// move lines it consumed or produced and records the reason. reasonStr overrides the reason
// name when not empty.
func (w *ManufOrderWorkflow) Cancel(
	ctx context.Context,
	order *manuforder.ManufOrder,
	reason *manuforder.CancelReason,
	reasonStr string,
) error {
	if reason == nil {
		return errs.NewConfigurationError(MsgCancelReasonRequired)
	}
	if _, err := order.Status().Cancel(); err != nil {
		return err
	}

	err := w.uow.Do(ctx, func(ctx context.Context) error {
		for _, op := range order.OperationOrders() {
			if op.Status() == manuforder.OperationCanceled {
				continue
			}
			if err := w.operations.Cancel(op); err != nil {
				return err
			}
		}
		if err := w.stockMoves.Cancel(ctx, order); err != nil {
			return err
		}
		if err := order.Cancel(*reason, reasonStr); err != nil {
			return err
		}
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order canceled",
		append(w.fields(order), zap.String("cancelReason", reason.Code()))...)
	return nil
}

// AllOperationsFinished finishes the order when every operation order is finished.
func (w *ManufOrderWorkflow) AllOperationsFinished(ctx context.Context, order *manuforder.ManufOrder) error {
	if !order.AllOperationsFinished() {
		return nil
	}
	return w.Finish(ctx, order)
}

// ComputePlannedEndDateT returns the latest planned end of the operation orders, or the
// planned start of the order when none is planned.
func (w *ManufOrderWorkflow) ComputePlannedEndDateT(order *manuforder.ManufOrder) *time.Time {
	return order.ComputePlannedEndDateT()
}

// UpdatePlannedDates moves the order to a new planned start and replans every operation
// order from there.
func (w *ManufOrderWorkflow) UpdatePlannedDates(
	ctx context.Context,
	order *manuforder.ManufOrder,
	plannedStart time.Time,
) error {
	err := w.uow.Do(ctx, func(ctx context.Context) error {
		order.SetPlannedStartDateT(plannedStart)

		ops := order.SortedOperationOrders()
		w.operations.ResetPlannedDates(ops)
		for _, op := range ops {
			if err := w.operations.Replan(order, op); err != nil {
				return err
			}
		}

		order.SetPlannedEndDateT(w.ComputePlannedEndDateT(order))
		return w.orders.Update(ctx, order)
	})
	if err != nil {
		return err
	}

	w.logger.Info("manufacturing order rescheduled",
		append(w.fields(order), zap.Time("plannedStartDateT", plannedStart))...)
	return nil
}

// ComputeOneUnitProductionPrice is the cost price of one produced unit.
func (w *ManufOrderWorkflow) ComputeOneUnitProductionPrice(
	ctx context.Context,
	order *manuforder.ManufOrder,
) decimal.Decimal {
	return w.prices.OneUnitProductionPrice(order.CostPrice(), order.Qty(), w.settings.NbDecimalDigitForUnitPrice(ctx))
}

func (w *ManufOrderWorkflow) updateProductPrices(ctx context.Context, order *manuforder.ManufOrder) error {
	p, err := w.products.Get(ctx, order.ProductID())
	if err != nil {
		return err
	}

	switch p.PricingMethod() {
	case product.PricingMethodReal:
		p.RecordRealProductionPrice(w.ComputeOneUnitProductionPrice(ctx, order))
	default:
		bom := order.BillOfMaterial()
		if bom == nil {
			return errs.NewValueIsRequiredError("billOfMaterial")
		}
		p.RecordForecastProductionPrice(bom.CostPrice)
	}

	if p.FollowLastProductionPrice() && p.AutoUpdateSalePrice() {
		w.prices.UpdateSalePrice(p, w.settings.NbDecimalDigitForUnitPrice(ctx))
	}

	return w.products.Update(ctx, p)
}

func (w *ManufOrderWorkflow) sendMail(ctx context.Context, order *manuforder.ManufOrder, tpl *message.Template) error {
	if tpl == nil {
		return errs.NewConfigurationError(MsgMissingTemplate)
	}
	if err := w.messages.GenerateAndSendMessage(ctx, order, *tpl); err != nil {
		w.logger.Warn("manufacturing order notification failed", append(w.fields(order), zap.Error(err))...)
		return errs.NewConfigurationErrorWithRef(err.Error(), order.Ref(), err)
	}
	return nil
}

func (w *ManufOrderWorkflow) fields(order *manuforder.ManufOrder) []zap.Field {
	return []zap.Field{
		zap.String("manufOrderID", order.ID().String()),
		zap.String("manufOrderSeq", order.Seq()),
		zap.Stringer("status", order.Status()),
	}
}
