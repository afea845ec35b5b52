package commands_test

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type MockManufOrderRepository struct{ mock.Mock }

func (m *MockManufOrderRepository) Add(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderRepository) Update(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderRepository) Get(ctx context.Context, id kernel.UUID) (*manuforder.ManufOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manuforder.ManufOrder), args.Error(1)
}

func (m *MockManufOrderRepository) GetAllInStatus(
	ctx context.Context,
	status manuforder.Status,
) ([]*manuforder.ManufOrder, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*manuforder.ManufOrder), args.Error(1)
}

type MockCancelReasonRepository struct{ mock.Mock }

func (m *MockCancelReasonRepository) GetByCode(ctx context.Context, code string) (manuforder.CancelReason, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(manuforder.CancelReason), args.Error(1)
}

type MockManufOrderWorkflow struct{ mock.Mock }

func (m *MockManufOrderWorkflow) Plan(ctx context.Context, o *manuforder.ManufOrder) (*manuforder.ManufOrder, error) {
	args := m.Called(ctx, o)
	return o, args.Error(0)
}

func (m *MockManufOrderWorkflow) Start(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) Pause(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) Resume(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) Finish(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) PartialFinish(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) Cancel(
	ctx context.Context,
	o *manuforder.ManufOrder,
	reason *manuforder.CancelReason,
	reasonStr string,
) error {
	return m.Called(ctx, o, reason, reasonStr).Error(0)
}

func (m *MockManufOrderWorkflow) AllOperationsFinished(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderWorkflow) UpdatePlannedDates(
	ctx context.Context,
	o *manuforder.ManufOrder,
	plannedStart time.Time,
) error {
	return m.Called(ctx, o, plannedStart).Error(0)
}

func newOrder() *manuforder.ManufOrder {
	o, err := manuforder.NewManufOrder(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(1))
	if err != nil {
		panic(err)
	}
	return o
}

func newOrderWithOperation() *manuforder.ManufOrder {
	o := newOrder()
	op, err := manuforder.NewOperationOrder("assembly", nil, time.Hour)
	if err != nil {
		panic(err)
	}
	o.AddOperationOrder(op)
	return o
}
