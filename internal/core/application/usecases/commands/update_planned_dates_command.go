package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdatePlannedDatesCommandIsNotConstructed = errors.New(
	"UpdatePlannedDatesCommand must be created via NewUpdatePlannedDatesCommand constructor",
)

// UpdatePlannedDatesCommand moves an order to a new planned start.
type UpdatePlannedDatesCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	plannedStart time.Time

	guard guard.ConstructorGuard
}

func NewUpdatePlannedDatesCommand(orderID kernel.UUID, plannedStart time.Time) (UpdatePlannedDatesCommand, error) {
	var errStart error
	if plannedStart.IsZero() {
		errStart = errs.NewValueIsRequiredError("plannedStartDateT")
	}
	if err := errors.Join(orderID.Validate(), errStart); err != nil {
		return UpdatePlannedDatesCommand{}, err
	}

	return UpdatePlannedDatesCommand{
		orderID:      orderID,
		plannedStart: plannedStart,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePlannedDatesCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePlannedDatesCommandIsNotConstructed)
}

func (c UpdatePlannedDatesCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdatePlannedDatesCommand) PlannedStart() time.Time { return c.plannedStart }
