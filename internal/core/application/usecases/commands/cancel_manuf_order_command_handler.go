package commands

import (
	"context"

	"production/internal/core/domain/model/manuforder"
	"production/internal/core/ports"
)

type CancelManufOrderCommandHandler struct {
	uow      ports.UnitOfWork
	orders   ports.ManufOrderRepository
	reasons  ports.CancelReasonRepository
	workflow ManufOrderWorkflow
}

func NewCancelManufOrderCommandHandler(
	uow ports.UnitOfWork,
	orders ports.ManufOrderRepository,
	reasons ports.CancelReasonRepository,
	workflow ManufOrderWorkflow,
) CancelManufOrderCommandHandler {
	return CancelManufOrderCommandHandler{
		uow:      uow,
		orders:   orders,
		reasons:  reasons,
		workflow: workflow,
	}
}

// Handle resolves the cancel reason by code and cancels the order. An unknown code is a
// not found error; no code at all is left to the workflow.
func (h CancelManufOrderCommandHandler) Handle(ctx context.Context, command CancelManufOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.uow.Do(ctx, func(ctx context.Context) error {
		order, err := h.orders.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		var reason *manuforder.CancelReason
		if command.CancelReasonCode() != "" {
			found, err := h.reasons.GetByCode(ctx, command.CancelReasonCode())
			if err != nil {
				return err
			}
			reason = &found
		}

		return h.workflow.Cancel(ctx, order, reason, command.CancelReasonStr())
	})
}
