package workflow_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManufOrderWorkflow_PlanStartFinish(t *testing.T) {
	tests := []struct {
		name               string
		finishAfter        time.Duration
		expectedDifference int64
	}{
		{"finished late", 2*time.Hour + 30*time.Minute, 30},
		{"finished early", 90 * time.Minute, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			op := newOp(t, 1, nil, manuforder.OperationDraft, 2*time.Hour)
			order := newOrder(t, func(s *manuforder.State) {
				s.Seq = "MO00100"
				s.IsConsProOnOperation = true
				s.OperationOrders = []*manuforder.OperationOrder{op}
				s.ToProduce = []manuforder.ProdProduct{{ProductID: s.ProductID, Qty: s.Qty}}
				s.BillOfMaterial = &manuforder.BillOfMaterial{Qty: decimal.NewFromInt(1), CostPrice: decimal.NewFromInt(5)}
			})
			p := newProduct(t, order.ProductID(), product.PricingMethodForecast, product.CostTypeStandard, false)
			f.stockMoves.On("CreateToProduceStockMove", mock.Anything, order).Return(nil).Once()
			f.costSheets.On("ComputeCostPrice", mock.Anything, order, costsheet.EndOfProduction, mock.Anything).
				Return(nil, nil).Once()
			f.products.On("Get", mock.Anything, order.ProductID()).Return(p, nil).Once()
			f.products.On("Update", mock.Anything, p).Return(nil).Once()
			f.stockMoves.On("Finish", mock.Anything, order).Return(nil).Once()
			f.orders.On("Update", mock.Anything, order).Return(nil).Times(3)
			w := f.workflow(t)

			_, err := w.Plan(t.Context(), order)
			require.NoError(t, err)
			assert.Equal(t, now.Add(2*time.Hour), *order.PlannedEndDateT())

			f.clock.now = now.Add(5 * time.Minute)
			require.NoError(t, w.Start(t.Context(), order))

			f.clock.now = now.Add(tt.finishAfter)
			require.NoError(t, w.Finish(t.Context(), order))

			assert.Equal(t, manuforder.Finished, order.Status())
			assert.Equal(t, manuforder.OperationFinished, op.Status())
			require.NotNil(t, order.RealEndDateT())
			assert.Equal(t, now.Add(tt.finishAfter), *order.RealEndDateT())
			assert.Equal(t, tt.expectedDifference, order.EndTimeDifference())
			assert.Equal(t, 3, f.uow.committed)
			f.assertExpectations(t)
		})
	}
}
