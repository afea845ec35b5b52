package commands_test

import (
	"context"
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/manuforder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinishCompletedOrdersCommandHandler_Handle_ChecksEveryOrder(t *testing.T) {
	ctx := t.Context()
	first, second := newOrderWithOperation(), newOrderWithOperation()

	orders := new(MockManufOrderRepository)
	workflow := new(MockManufOrderWorkflow)
	orders.On("GetAllInStatus", ctx, manuforder.InProgress).
		Return([]*manuforder.ManufOrder{first, second}, nil).Once()
	workflow.On("AllOperationsFinished", ctx, first).Return(nil).Once()
	workflow.On("AllOperationsFinished", ctx, second).Return(nil).Once()

	handler := commands.NewFinishCompletedOrdersCommandHandler(orders, workflow)
	require.NoError(t, handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand()))

	orders.AssertExpectations(t)
	workflow.AssertExpectations(t)
}

func TestFinishCompletedOrdersCommandHandler_Handle_ContinuesAfterFailure(t *testing.T) {
	ctx := t.Context()
	first, second := newOrderWithOperation(), newOrderWithOperation()
	finishErr := errors.New("stock move storage unavailable")

	orders := new(MockManufOrderRepository)
	workflow := new(MockManufOrderWorkflow)
	orders.On("GetAllInStatus", ctx, manuforder.InProgress).
		Return([]*manuforder.ManufOrder{first, second}, nil).Once()
	workflow.On("AllOperationsFinished", ctx, first).Return(finishErr).Once()
	workflow.On("AllOperationsFinished", ctx, second).Return(nil).Once()

	handler := commands.NewFinishCompletedOrdersCommandHandler(orders, workflow)
	err := handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand())

	require.ErrorIs(t, err, finishErr)
	assert.Contains(t, err.Error(), first.Ref())
	workflow.AssertExpectations(t)
}

func TestFinishCompletedOrdersCommandHandler_Handle_StopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	orders := new(MockManufOrderRepository)
	workflow := new(MockManufOrderWorkflow)
	orders.On("GetAllInStatus", ctx, manuforder.InProgress).
		Return([]*manuforder.ManufOrder{newOrderWithOperation()}, nil).Once()

	handler := commands.NewFinishCompletedOrdersCommandHandler(orders, workflow)
	err := handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand())

	require.ErrorIs(t, err, context.Canceled)
	workflow.AssertNotCalled(t, "AllOperationsFinished", mock.Anything, mock.Anything)
}

func TestFinishCompletedOrdersCommandHandler_Handle_LeavesOrdersWithoutOperations(t *testing.T) {
	ctx := t.Context()
	withoutOperations, withOperation := newOrder(), newOrderWithOperation()

	orders := new(MockManufOrderRepository)
	workflow := new(MockManufOrderWorkflow)
	orders.On("GetAllInStatus", ctx, manuforder.InProgress).
		Return([]*manuforder.ManufOrder{withoutOperations, withOperation}, nil).Once()
	workflow.On("AllOperationsFinished", ctx, withOperation).Return(nil).Once()

	handler := commands.NewFinishCompletedOrdersCommandHandler(orders, workflow)
	require.NoError(t, handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand()))

	workflow.AssertNotCalled(t, "AllOperationsFinished", ctx, withoutOperations)
	workflow.AssertExpectations(t)
}

func TestFinishCompletedOrdersCommandHandler_Handle_LoadFailure(t *testing.T) {
	ctx := t.Context()
	loadErr := errors.New("connection refused")

	orders := new(MockManufOrderRepository)
	orders.On("GetAllInStatus", ctx, manuforder.InProgress).Return(nil, loadErr).Once()

	handler := commands.NewFinishCompletedOrdersCommandHandler(orders, new(MockManufOrderWorkflow))

	require.ErrorIs(t, handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand()), loadErr)
}
