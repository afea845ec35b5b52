package commands

import (
	"context"
	"errors"
	"fmt"

	"production/internal/core/domain/model/manuforder"
	"production/internal/core/ports"
)

// FinishCompletedOrdersCommandHandler checks the in-progress orders one by one. Each order
// is finished in its own unit of work; a failing order does not stop the others and its
// error is reported in the joined result. Orders without operation orders have no
// completion to wait for and are only finished on request.
type FinishCompletedOrdersCommandHandler struct {
	orders   ports.ManufOrderRepository
	workflow ManufOrderWorkflow
}

func NewFinishCompletedOrdersCommandHandler(
	orders ports.ManufOrderRepository,
	workflow ManufOrderWorkflow,
) FinishCompletedOrdersCommandHandler {
	return FinishCompletedOrdersCommandHandler{orders: orders, workflow: workflow}
}

func (h *FinishCompletedOrdersCommandHandler) Handle(ctx context.Context, cmd FinishCompletedOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.orders.GetAllInStatus(ctx, manuforder.InProgress)
	if err != nil {
		return err
	}

	var failures []error
	for _, order := range orders {
		if err = ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}
		if len(order.OperationOrders()) == 0 {
			continue
		}
		if err = h.workflow.AllOperationsFinished(ctx, order); err != nil {
			failures = append(failures, fmt.Errorf("manufacturing order %s: %w", order.Ref(), err))
		}
	}
	return errors.Join(failures...)
}
