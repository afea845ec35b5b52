package workflow_test

import (
	"context"
	"time"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/message"
	"production/internal/core/domain/model/product"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// fakeUnitOfWork runs fn inline and records how each unit ended.
type fakeUnitOfWork struct {
	committed  int
	rolledBack int
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		u.rolledBack++
		return err
	}
	u.committed++
	return nil
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

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockManufOrderService struct{ mock.Mock }

func (m *MockManufOrderService) NextManufOrderSeq(ctx context.Context, o *manuforder.ManufOrder) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockManufOrderService) PreFillOperations(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderService) CreateToConsumeProdProducts(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockManufOrderService) CreateToProduceProdProducts(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

type MockStockMoveService struct{ mock.Mock }

func (m *MockStockMoveService) CreateToConsumeStockMove(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStockMoveService) CreateToProduceStockMove(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStockMoveService) RealizeStockMovesAndCreateOneEmpty(
	ctx context.Context,
	o *manuforder.ManufOrder,
	moveIDs []kernel.UUID,
) (kernel.UUID, error) {
	args := m.Called(ctx, o, moveIDs)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockStockMoveService) Finish(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStockMoveService) PartialFinish(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStockMoveService) Cancel(ctx context.Context, o *manuforder.ManufOrder) error {
	return m.Called(ctx, o).Error(0)
}

type MockCostSheetService struct{ mock.Mock }

func (m *MockCostSheetService) ComputeCostPrice(
	ctx context.Context,
	o *manuforder.ManufOrder,
	mode costsheet.CalculationMode,
	asOf time.Time,
) (*costsheet.CostSheet, error) {
	args := m.Called(ctx, o, mode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costsheet.CostSheet), args.Error(1)
}

type MockMessageService struct{ mock.Mock }

func (m *MockMessageService) GenerateAndSendMessage(
	ctx context.Context,
	o *manuforder.ManufOrder,
	tpl message.Template,
) error {
	return m.Called(ctx, o, tpl).Error(0)
}

// stubSettings is a fixed configuration.
type stubSettings struct {
	unitPriceScale int32
	bomQtyScale    int32
	supplychain    *ports.SupplychainSettings
	err            error
}

func (s stubSettings) NbDecimalDigitForUnitPrice(context.Context) int32 { return s.unitPriceScale }
func (s stubSettings) NbDecimalDigitForBomQty(context.Context) int32    { return s.bomQtyScale }

func (s stubSettings) Supplychain(context.Context) (*ports.SupplychainSettings, error) {
	return s.supplychain, s.err
}

type MockSequenceService struct{ mock.Mock }

func (m *MockSequenceService) Next(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}
