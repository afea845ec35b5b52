package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/manuforder"
)

// ManufOrderWorkflow is the part of workflow.ManufOrderWorkflow the command handlers drive.
type ManufOrderWorkflow interface {
	Plan(ctx context.Context, order *manuforder.ManufOrder) (*manuforder.ManufOrder, error)
	Start(ctx context.Context, order *manuforder.ManufOrder) error
	Pause(ctx context.Context, order *manuforder.ManufOrder) error
	Resume(ctx context.Context, order *manuforder.ManufOrder) error
	Finish(ctx context.Context, order *manuforder.ManufOrder) error
	PartialFinish(ctx context.Context, order *manuforder.ManufOrder) error
	Cancel(ctx context.Context, order *manuforder.ManufOrder, reason *manuforder.CancelReason, reasonStr string) error
	AllOperationsFinished(ctx context.Context, order *manuforder.ManufOrder) error
	UpdatePlannedDates(ctx context.Context, order *manuforder.ManufOrder, plannedStart time.Time) error
}
