package commands

import (
	"errors"

	"production/internal/pkg/guard"
)

var ErrFinishCompletedOrdersCommandIsNotConstructed = errors.New(
	"FinishCompletedOrdersCommand must be created via NewFinishCompletedOrdersCommand constructor",
)

// FinishCompletedOrdersCommand finishes every in-progress order whose operation orders are
// all finished. It is run periodically by the scheduler.
type FinishCompletedOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewFinishCompletedOrdersCommand() FinishCompletedOrdersCommand {
	return FinishCompletedOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *FinishCompletedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFinishCompletedOrdersCommandIsNotConstructed)
}
