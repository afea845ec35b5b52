package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrCancelManufOrderCommandIsNotConstructed = errors.New(
	"CancelManufOrderCommand must be created via NewCancelManufOrderCommand constructor",
)

// CancelManufOrderCommand cancels an order. An empty reason code is accepted here and
// rejected by the workflow as a configuration error.
type CancelManufOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	cancelReasonCode string
	cancelReasonStr  string

	guard guard.ConstructorGuard
}

func NewCancelManufOrderCommand(
	orderID kernel.UUID,
	cancelReasonCode, cancelReasonStr string,
) (CancelManufOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelManufOrderCommand{}, err
	}

	return CancelManufOrderCommand{
		orderID:          orderID,
		cancelReasonCode: cancelReasonCode,
		cancelReasonStr:  cancelReasonStr,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CancelManufOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelManufOrderCommandIsNotConstructed)
}

func (c CancelManufOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c CancelManufOrderCommand) CancelReasonCode() string { return c.cancelReasonCode }
func (c CancelManufOrderCommand) CancelReasonStr() string  { return c.cancelReasonStr }
