package commands

import (
	"context"

	"production/internal/core/domain/model/manuforder"
	"production/internal/core/ports"
)

// ChangeManufOrderStatusCommandHandler loads the order and applies the requested transition
// in one unit of work.
type ChangeManufOrderStatusCommandHandler struct {
	uow      ports.UnitOfWork
	orders   ports.ManufOrderRepository
	workflow ManufOrderWorkflow
}

func NewChangeManufOrderStatusCommandHandler(
	uow ports.UnitOfWork,
	orders ports.ManufOrderRepository,
	workflow ManufOrderWorkflow,
) ChangeManufOrderStatusCommandHandler {
	return ChangeManufOrderStatusCommandHandler{
		uow:      uow,
		orders:   orders,
		workflow: workflow,
	}
}

func (h ChangeManufOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeManufOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.uow.Do(ctx, func(ctx context.Context) error {
		order, err := h.orders.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}
		return h.apply(ctx, command.Transition(), order)
	})
}

func (h ChangeManufOrderStatusCommandHandler) apply(
	ctx context.Context,
	transition Transition,
	order *manuforder.ManufOrder,
) error {
	switch transition {
	case TransitionPlan:
		_, err := h.workflow.Plan(ctx, order)
		return err
	case TransitionStart:
		return h.workflow.Start(ctx, order)
	case TransitionPause:
		return h.workflow.Pause(ctx, order)
	case TransitionResume:
		return h.workflow.Resume(ctx, order)
	case TransitionFinish:
		return h.workflow.Finish(ctx, order)
	case TransitionPartialFinish:
		return h.workflow.PartialFinish(ctx, order)
	default:
		return transition.Validate()
	}
}
