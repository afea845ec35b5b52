package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrChangeManufOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeManufOrderStatusCommand must be created via NewChangeManufOrderStatusCommand constructor",
)

// Transition names a workflow action that needs nothing but the order.
type Transition string

const (
	TransitionPlan          Transition = "plan"
	TransitionStart         Transition = "start"
	TransitionPause         Transition = "pause"
	TransitionResume        Transition = "resume"
	TransitionFinish        Transition = "finish"
	TransitionPartialFinish Transition = "partial-finish"
)

func (t Transition) Validate() error {
	switch t {
	case TransitionPlan, TransitionStart, TransitionPause, TransitionResume, TransitionFinish, TransitionPartialFinish:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is not a known transition", string(t)))
	}
}

// ChangeManufOrderStatusCommand asks the workflow to apply one transition to an order.
//
//	cmd, err := NewChangeManufOrderStatusCommand(orderID, TransitionStart)
//	if err != nil {
//	    return err
//	}
//	return handler.Handle(ctx, cmd)
type ChangeManufOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	transition Transition

	guard guard.ConstructorGuard
}

func NewChangeManufOrderStatusCommand(orderID kernel.UUID, transition Transition) (ChangeManufOrderStatusCommand, error) {
	command := ChangeManufOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTransition(transition),
	); err != nil {
		return ChangeManufOrderStatusCommand{}, err
	}

	return command, nil
}

func (c ChangeManufOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeManufOrderStatusCommandIsNotConstructed)
}

func (c ChangeManufOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeManufOrderStatusCommand) Transition() Transition {
	return c.transition
}

func (c *ChangeManufOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeManufOrderStatusCommand) setTransition(transition Transition) error {
	if err := transition.Validate(); err != nil {
		return err
	}
	c.transition = transition
	return nil
}
