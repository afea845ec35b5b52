package commands

import (
	"context"

	"production/internal/core/ports"
)

type UpdatePlannedDatesCommandHandler struct {
	uow      ports.UnitOfWork
	orders   ports.ManufOrderRepository
	workflow ManufOrderWorkflow
}

func NewUpdatePlannedDatesCommandHandler(
	uow ports.UnitOfWork,
	orders ports.ManufOrderRepository,
	workflow ManufOrderWorkflow,
) UpdatePlannedDatesCommandHandler {
	return UpdatePlannedDatesCommandHandler{uow: uow, orders: orders, workflow: workflow}
}

func (h UpdatePlannedDatesCommandHandler) Handle(ctx context.Context, command UpdatePlannedDatesCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.uow.Do(ctx, func(ctx context.Context) error {
		order, err := h.orders.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}
		return h.workflow.UpdatePlannedDates(ctx, order, command.PlannedStart())
	})
}
