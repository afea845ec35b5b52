package workflow_test

import (
	"testing"
	"time"

	"production/internal/core/application/workflow"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/product"
	"production/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)

// testClock is a settable clock shared by the workflow and the operation order workflow.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type fixture struct {
	uow         *fakeUnitOfWork
	orders      *MockManufOrderRepository
	products    *MockProductRepository
	manufOrders *MockManufOrderService
	stockMoves  *MockStockMoveService
	costSheets  *MockCostSheetService
	messages    *MockMessageService
	settings    stubSettings
	clock       *testClock
}

func newFixture() *fixture {
	return &fixture{
		uow:         &fakeUnitOfWork{},
		orders:      new(MockManufOrderRepository),
		products:    new(MockProductRepository),
		manufOrders: new(MockManufOrderService),
		stockMoves:  new(MockStockMoveService),
		costSheets:  new(MockCostSheetService),
		messages:    new(MockMessageService),
		settings:    stubSettings{unitPriceScale: 2, bomQtyScale: 3},
		clock:       &testClock{now: now},
	}
}

func (f *fixture) workflow(t *testing.T) *workflow.ManufOrderWorkflow {
	t.Helper()
	w, err := workflow.NewManufOrderWorkflow(workflow.Deps{
		UnitOfWork:  f.uow,
		Orders:      f.orders,
		Products:    f.products,
		Operations:  services.NewOperationOrderWorkflowService(f.clock),
		ManufOrders: f.manufOrders,
		StockMoves:  f.stockMoves,
		CostSheets:  f.costSheets,
		Messages:    f.messages,
		Settings:    f.settings,
		Prices:      services.NewProductPriceService(),
		Clock:       f.clock,
	})
	require.NoError(t, err)
	return w
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.manufOrders.AssertExpectations(t)
	f.stockMoves.AssertExpectations(t)
	f.costSheets.AssertExpectations(t)
	f.messages.AssertExpectations(t)
}

func newOrder(t *testing.T, mutate func(s *manuforder.State)) *manuforder.ManufOrder {
	t.Helper()
	s := manuforder.State{
		ID:        kernel.NewUUID(),
		ProductID: kernel.NewUUID(),
		Qty:       decimal.NewFromInt(4),
		Status:    manuforder.Draft,
	}
	if mutate != nil {
		mutate(&s)
	}
	o, err := manuforder.RestoreManufOrder(s)
	require.NoError(t, err)
	return o
}

func newOp(
	t *testing.T,
	id int64,
	priority *int,
	status manuforder.OperationStatus,
	duration time.Duration,
) *manuforder.OperationOrder {
	t.Helper()
	op, err := manuforder.RestoreOperationOrder(manuforder.OperationOrderState{
		ID:              id,
		Name:            "operation",
		Priority:        priority,
		Status:          status,
		PlannedDuration: duration,
	})
	require.NoError(t, err)
	return op
}

func newProduct(
	t *testing.T,
	id kernel.UUID,
	method product.PricingMethod,
	costType product.CostType,
	autoUpdateSalePrice bool,
) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, "CHAIR", "Chair", "pcs")
	require.NoError(t, err)
	p.ConfigurePricing(method, costType, autoUpdateSalePrice)
	return p
}

func intPtr(i int) *int { return &i }

func today() time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
