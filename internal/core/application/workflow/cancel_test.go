package workflow_test

import (
	"errors"
	"testing"
	"time"

	"production/internal/core/application/workflow"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/stockmove"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManufOrderWorkflow_Cancel(t *testing.T) {
	reason, err := manuforder.NewCancelReason("MACHINE", "Machine breakdown")
	require.NoError(t, err)

	t.Run("missing reason is a configuration error and changes nothing", func(t *testing.T) {
		for _, status := range []manuforder.Status{manuforder.Draft, manuforder.InProgress, manuforder.Finished} {
			t.Run(status.String(), func(t *testing.T) {
				f := newFixture()
				op := newOp(t, 1, nil, manuforder.OperationPlanned, time.Hour)
				order := newOrder(t, func(s *manuforder.State) {
					s.Status = status
					s.OperationOrders = []*manuforder.OperationOrder{op}
				})

				err := f.workflow(t).Cancel(t.Context(), order, nil, "anything")

				require.ErrorIs(t, err, errs.ErrConfiguration)
				assert.Contains(t, err.Error(), workflow.MsgCancelReasonRequired)
				assert.Equal(t, status, order.Status())
				assert.Equal(t, manuforder.OperationPlanned, op.Status())
				assert.Equal(t, 0, f.uow.committed+f.uow.rolledBack)
				f.stockMoves.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("should cancel operations and stock moves and detach lines", func(t *testing.T) {
		f := newFixture()
		running := newOp(t, 1, nil, manuforder.OperationInProgress, time.Hour)
		canceled := newOp(t, 2, nil, manuforder.OperationCanceled, time.Hour)
		var consumed, produced *stockmove.Line
		order := newOrder(t, func(s *manuforder.State) {
			s.Status = manuforder.InProgress
			s.OperationOrders = []*manuforder.OperationOrder{running, canceled}
			s.DiffConsume = []manuforder.ProdProduct{{ProductID: kernel.NewUUID(), Qty: decimal.NewFromInt(1)}}
		})
		consumed, _ = stockmove.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(1), "pcs", ptrUUID(order.ID()), nil)
		produced, _ = stockmove.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromInt(1), "pcs", nil, ptrUUID(order.ID()))
		order.AttachConsumedLine(consumed)
		order.AttachProducedLine(produced)
		mock.InOrder(
			f.stockMoves.On("Cancel", mock.Anything, order).Return(nil).Once(),
			f.orders.On("Update", mock.Anything, order).Return(nil).Once(),
		)

		err := f.workflow(t).Cancel(t.Context(), order, &reason, "")

		require.NoError(t, err)
		assert.Equal(t, manuforder.Canceled, order.Status())
		assert.Equal(t, manuforder.OperationCanceled, running.Status())
		assert.Equal(t, manuforder.OperationCanceled, canceled.Status())
		assert.Nil(t, consumed.ConsumedManufOrderID())
		assert.Nil(t, produced.ProducedManufOrderID())
		assert.Empty(t, order.DiffConsumeProdProducts())
		assert.Equal(t, "MACHINE", order.CancelReason().Code())
		assert.Equal(t, "Machine breakdown", order.CancelReasonStr())
		f.assertExpectations(t)
	})

	t.Run("free text overrides the reason name", func(t *testing.T) {
		f := newFixture()
		order := newOrder(t, nil)
		f.stockMoves.On("Cancel", mock.Anything, order).Return(nil).Once()
		f.orders.On("Update", mock.Anything, order).Return(nil).Once()

		require.NoError(t, f.workflow(t).Cancel(t.Context(), order, &reason, "custom"))

		assert.Equal(t, "custom", order.CancelReasonStr())
	})

	t.Run("terminal orders cannot be canceled", func(t *testing.T) {
		f := newFixture()
		order := newOrder(t, func(s *manuforder.State) { s.Status = manuforder.Finished })

		err := f.workflow(t).Cancel(t.Context(), order, &reason, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, manuforder.Finished, order.Status())
	})

	t.Run("stock move failure aborts the unit", func(t *testing.T) {
		f := newFixture()
		order := newOrder(t, func(s *manuforder.State) { s.Status = manuforder.Planned })
		stockErr := errors.New("move already realized")
		f.stockMoves.On("Cancel", mock.Anything, order).Return(stockErr).Once()

		err := f.workflow(t).Cancel(t.Context(), order, &reason, "")

		require.ErrorIs(t, err, stockErr)
		assert.Equal(t, 1, f.uow.rolledBack)
		assert.Equal(t, manuforder.Planned, order.Status())
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func ptrUUID(id kernel.UUID) *kernel.UUID { return &id }
