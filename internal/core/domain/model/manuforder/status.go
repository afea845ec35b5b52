package manuforder

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a manufacturing order.
//
// State transitions:
//
//	Draft ──> Planned ──> InProgress <──> StandBy
//	  │         │  ▲          │              │
//	  │         └──┘          └───> Finished <┘
//	  │       (replan)
//	  └─────────┴─────────────┴──────────────┴──> Canceled
//
// Finished and Canceled are terminal. The integer values are persisted and must not change.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Draft is the status of an order created outside the workflow and not planned yet.
	Draft

	// Canceled is terminal. The order keeps its cancel reason.
	Canceled

	// Planned orders have their operation orders scheduled and their stock moves created.
	Planned

	// InProgress orders have been started.
	InProgress

	// StandBy orders are paused together with their running operation orders.
	StandBy

	// Finished is terminal. Real end date and end time difference are set.
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Draft:      "Draft",
		Canceled:   "Canceled",
		Planned:    "Planned",
		InProgress: "InProgress",
		StandBy:    "StandBy",
		Finished:   "Finished",
	}
}

// Validate checks that s is one of the defined statuses (Unknown excluded).
func (s Status) Validate() error {
	if s <= Unknown || s > Finished {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Finished || s == Canceled
}

// Plan transitions to Planned.
//
// Valid transitions:
//   - Draft -> Planned
//   - Planned -> Planned (replanning keeps the sequence and recomputes dates)
func (s Status) Plan() (Status, error) {
	if s != Draft && s != Planned {
		return 0, invalidTransition(s, "plan")
	}
	return Planned, nil
}

// Start transitions Planned -> InProgress.
func (s Status) Start() (Status, error) {
	if s != Planned {
		return 0, invalidTransition(s, "start")
	}
	return InProgress, nil
}

// Pause transitions InProgress -> StandBy.
func (s Status) Pause() (Status, error) {
	if s != InProgress {
		return 0, invalidTransition(s, "pause")
	}
	return StandBy, nil
}

// Resume transitions StandBy -> InProgress.
func (s Status) Resume() (Status, error) {
	if s != StandBy {
		return 0, invalidTransition(s, "resume")
	}
	return InProgress, nil
}

// Finish transitions InProgress or StandBy -> Finished.
func (s Status) Finish() (Status, error) {
	if s != InProgress && s != StandBy {
		return 0, invalidTransition(s, "finish")
	}
	return Finished, nil
}

// ValidatePartialFinish checks that part of the production can be declared.
// Partial finish leaves the status untouched.
func (s Status) ValidatePartialFinish() error {
	if s != InProgress && s != StandBy {
		return invalidTransition(s, "partially finish")
	}
	return nil
}

// Cancel transitions any non-terminal status -> Canceled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, invalidTransition(s, "cancel")
	}
	return Canceled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
