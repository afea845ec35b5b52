package services

import (
	"time"

	"production/internal/core/domain/model/manuforder"
	"production/internal/pkg/clock"
)

// OperationOrderWorkflow drives the state machine of a single operation order. The
// manufacturing order workflow only ever changes operation orders through it.
type OperationOrderWorkflow interface {
	// Plan schedules op right after the operation orders sequenced before it and moves it
	// to Planned.
	Plan(order *manuforder.ManufOrder, op *manuforder.OperationOrder) error

	// Replan recomputes the planned dates of op without changing its status.
	Replan(order *manuforder.ManufOrder, op *manuforder.OperationOrder) error

	// ResetPlannedDates clears the planned dates of every operation order in ops.
	ResetPlannedDates(ops []*manuforder.OperationOrder)

	Start(op *manuforder.OperationOrder) error
	Pause(op *manuforder.OperationOrder) error
	Resume(op *manuforder.OperationOrder) error
	Finish(op *manuforder.OperationOrder) error
	Cancel(op *manuforder.OperationOrder) error
}

var _ OperationOrderWorkflow = (*OperationOrderWorkflowService)(nil)

// OperationOrderWorkflowService chains operation orders one after the other: an operation
// starts when the order starts or when the latest operation sequenced before it ends,
// whichever is later, and lasts its planned duration.
type OperationOrderWorkflowService struct {
	clock clock.Clock
}

func NewOperationOrderWorkflowService(clk clock.Clock) *OperationOrderWorkflowService {
	return &OperationOrderWorkflowService{clock: clk}
}

func (s *OperationOrderWorkflowService) Plan(order *manuforder.ManufOrder, op *manuforder.OperationOrder) error {
	start, end := s.schedule(order, op)
	return op.Plan(start, end)
}

func (s *OperationOrderWorkflowService) Replan(order *manuforder.ManufOrder, op *manuforder.OperationOrder) error {
	start, end := s.schedule(order, op)
	return op.Reschedule(start, end)
}

func (s *OperationOrderWorkflowService) ResetPlannedDates(ops []*manuforder.OperationOrder) {
	for _, op := range ops {
		op.ResetPlannedDates()
	}
}

func (s *OperationOrderWorkflowService) Start(op *manuforder.OperationOrder) error {
	return op.Start(s.clock.Now())
}

func (s *OperationOrderWorkflowService) Pause(op *manuforder.OperationOrder) error {
	return op.Pause()
}

func (s *OperationOrderWorkflowService) Resume(op *manuforder.OperationOrder) error {
	return op.Resume()
}

func (s *OperationOrderWorkflowService) Finish(op *manuforder.OperationOrder) error {
	return op.Finish(s.clock.Now())
}

func (s *OperationOrderWorkflowService) Cancel(op *manuforder.OperationOrder) error {
	return op.Cancel()
}

func (s *OperationOrderWorkflowService) schedule(
	order *manuforder.ManufOrder,
	op *manuforder.OperationOrder,
) (time.Time, time.Time) {
	start := s.clock.Now()
	if plannedStart := order.PlannedStartDateT(); plannedStart != nil {
		start = *plannedStart
	}

	for _, previous := range order.SortedOperationOrders() {
		if previous == op {
			break
		}
		if end := previous.PlannedEndDateT(); end != nil && end.After(start) {
			start = *end
		}
	}

	return start, start.Add(op.PlannedDuration())
}
