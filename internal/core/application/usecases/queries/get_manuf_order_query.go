package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetManufOrderQueryIsNotConstructed = errors.New(
	"GetManufOrderQuery must be created via NewGetManufOrderQuery constructor",
)

// GetManufOrderQuery reads one manufacturing order with its operation orders.
type GetManufOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetManufOrderQuery(orderID kernel.UUID) (GetManufOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetManufOrderQuery{}, err
	}
	return GetManufOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetManufOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetManufOrderQueryIsNotConstructed)
}

func (q GetManufOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetManufOrderQueryResponse struct {
	ID                kernel.UUID
	Seq               string
	Status            string
	ProductID         kernel.UUID
	Qty               decimal.Decimal
	Unit              string
	CostPrice         decimal.Decimal
	PlannedStartDateT *time.Time
	PlannedEndDateT   *time.Time
	RealStartDateT    *time.Time
	RealEndDateT      *time.Time
	EndTimeDifference int64
	CancelReasonCode  *string
	CancelReasonStr   string
	OperationOrders   []OperationOrderResponse
}

type OperationOrderResponse struct {
	ID                int64
	Name              string
	Priority          *int
	Status            string
	PlannedStartDateT *time.Time
	PlannedEndDateT   *time.Time
	RealStartDateT    *time.Time
	RealEndDateT      *time.Time
}
