package manuforder

import (
	"fmt"
	"time"

	"production/internal/pkg/errs"
)

// OperationStatus is the lifecycle state of one production step. It shares the integer
// values of Status so both can be stored in the same kind of column.
type OperationStatus int

const (
	OperationUnknown OperationStatus = iota
	OperationDraft
	OperationCanceled
	OperationPlanned
	OperationInProgress
	OperationStandBy
	OperationFinished
)

func (s OperationStatus) String() string {
	switch s {
	case OperationDraft:
		return "Draft"
	case OperationCanceled:
		return "Canceled"
	case OperationPlanned:
		return "Planned"
	case OperationInProgress:
		return "InProgress"
	case OperationStandBy:
		return "StandBy"
	case OperationFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

func (s OperationStatus) Validate() error {
	if s <= OperationUnknown || s > OperationFinished {
		return errs.NewValueIsInvalidErrorWithCause("operation status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// OperationOrder is one ordered step of a manufacturing order. It is owned by its
// ManufOrder; transitions are driven by the operation order workflow.
type OperationOrder struct {
	id              int64
	name            string
	priority        *int
	status          OperationStatus
	plannedDuration time.Duration
	plannedStart    *time.Time
	plannedEnd      *time.Time
	realStart       *time.Time
	realEnd         *time.Time
}

// NewOperationOrder creates a Draft operation order. id is 0 until the order is persisted.
func NewOperationOrder(name string, priority *int, plannedDuration time.Duration) (*OperationOrder, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if plannedDuration < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("plannedDuration",
			fmt.Errorf("%s is negative", plannedDuration))
	}
	return &OperationOrder{
		name:            name,
		priority:        copyInt(priority),
		status:          OperationDraft,
		plannedDuration: plannedDuration,
	}, nil
}

// OperationOrderState is the persisted form of an operation order.
type OperationOrderState struct {
	ID              int64
	Name            string
	Priority        *int
	Status          OperationStatus
	PlannedDuration time.Duration
	PlannedStart    *time.Time
	PlannedEnd      *time.Time
	RealStart       *time.Time
	RealEnd         *time.Time
}

// RestoreOperationOrder rebuilds an operation order from persistence.
func RestoreOperationOrder(state OperationOrderState) (*OperationOrder, error) {
	op, err := NewOperationOrder(state.Name, state.Priority, state.PlannedDuration)
	if err != nil {
		return nil, err
	}
	if err = state.Status.Validate(); err != nil {
		return nil, err
	}
	op.id = state.ID
	op.status = state.Status
	op.plannedStart = copyTime(state.PlannedStart)
	op.plannedEnd = copyTime(state.PlannedEnd)
	op.realStart = copyTime(state.RealStart)
	op.realEnd = copyTime(state.RealEnd)
	return op, nil
}

// State returns the persisted form of the operation order.
func (o *OperationOrder) State() OperationOrderState {
	return OperationOrderState{
		ID:              o.id,
		Name:            o.name,
		Priority:        copyInt(o.priority),
		Status:          o.status,
		PlannedDuration: o.plannedDuration,
		PlannedStart:    copyTime(o.plannedStart),
		PlannedEnd:      copyTime(o.plannedEnd),
		RealStart:       copyTime(o.realStart),
		RealEnd:         copyTime(o.realEnd),
	}
}

func (o *OperationOrder) ID() int64                      { return o.id }
func (o *OperationOrder) Name() string                   { return o.name }
func (o *OperationOrder) Priority() *int                 { return copyInt(o.priority) }
func (o *OperationOrder) Status() OperationStatus        { return o.status }
func (o *OperationOrder) PlannedDuration() time.Duration { return o.plannedDuration }
func (o *OperationOrder) PlannedStartDateT() *time.Time  { return copyTime(o.plannedStart) }
func (o *OperationOrder) PlannedEndDateT() *time.Time    { return copyTime(o.plannedEnd) }
func (o *OperationOrder) RealStartDateT() *time.Time     { return copyTime(o.realStart) }
func (o *OperationOrder) RealEndDateT() *time.Time       { return copyTime(o.realEnd) }

// AssignID is called by the repository once the row exists.
func (o *OperationOrder) AssignID(id int64) {
	o.id = id
}

// Plan schedules the operation and moves it to Planned. Allowed from Draft and Planned.
func (o *OperationOrder) Plan(start, end time.Time) error {
	if o.status != OperationDraft && o.status != OperationPlanned {
		return o.invalidTransition("plan")
	}
	if err := o.Reschedule(start, end); err != nil {
		return err
	}
	o.status = OperationPlanned
	return nil
}

// Reschedule sets the planned dates without touching the status.
func (o *OperationOrder) Reschedule(start, end time.Time) error {
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("plannedEndDateT",
			fmt.Errorf("%s is before planned start %s", end, start))
	}
	o.plannedStart = &start
	o.plannedEnd = &end
	return nil
}

// ResetPlannedDates clears both planned dates.
func (o *OperationOrder) ResetPlannedDates() {
	o.plannedStart = nil
	o.plannedEnd = nil
}

// Start moves a Draft or Planned operation to InProgress.
func (o *OperationOrder) Start(now time.Time) error {
	if o.status != OperationDraft && o.status != OperationPlanned {
		return o.invalidTransition("start")
	}
	o.realStart = &now
	o.status = OperationInProgress
	return nil
}

// Pause moves InProgress -> StandBy.
func (o *OperationOrder) Pause() error {
	if o.status != OperationInProgress {
		return o.invalidTransition("pause")
	}
	o.status = OperationStandBy
	return nil
}

// Resume moves StandBy -> InProgress.
func (o *OperationOrder) Resume() error {
	if o.status != OperationStandBy {
		return o.invalidTransition("resume")
	}
	o.status = OperationInProgress
	return nil
}

// Finish moves InProgress or StandBy -> Finished and records the real end.
func (o *OperationOrder) Finish(now time.Time) error {
	if o.status != OperationInProgress && o.status != OperationStandBy {
		return o.invalidTransition("finish")
	}
	o.realEnd = &now
	o.status = OperationFinished
	return nil
}

// Cancel moves any status but Canceled to Canceled.
func (o *OperationOrder) Cancel() error {
	if o.status == OperationCanceled {
		return o.invalidTransition("cancel")
	}
	o.status = OperationCanceled
	return nil
}

func (o *OperationOrder) invalidTransition(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"operation status is invalid",
		fmt.Errorf("operation %q: %s is not a valid status to %s", o.name, o.status, action),
	)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
