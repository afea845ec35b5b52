package messagerepo

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/message"
	"production/internal/core/ports"
	"production/internal/pkg/clock"
	"production/internal/pkg/errs"
)

var _ ports.MessageService = (*OutboxMessageService)(nil)

// ManufOrderMessageData is what notification templates can refer to, e.g. {{.Ref}}.
type ManufOrderMessageData struct {
	ID                string
	Ref               string
	Status            string
	Qty               string
	Unit              string
	PlannedStartDateT *time.Time
	PlannedEndDateT   *time.Time
	RealStartDateT    *time.Time
	RealEndDateT      *time.Time
	EndTimeDifference int64
}

// OutboxMessageService renders notifications and puts them in the messages table. Delivery
// to mail or chat happens outside this service.
type OutboxMessageService struct {
	messages ports.MessageRepository
	clock    clock.Clock
}

func NewOutboxMessageService(messages ports.MessageRepository, clk clock.Clock) (*OutboxMessageService, error) {
	var errMessages, errClock error
	if messages == nil {
		errMessages = errs.NewValueIsRequiredError("messages")
	}
	if clk == nil {
		errClock = errs.NewValueIsRequiredError("clock")
	}
	if err := errors.Join(errMessages, errClock); err != nil {
		return nil, err
	}
	return &OutboxMessageService{messages: messages, clock: clk}, nil
}

func (s *OutboxMessageService) GenerateAndSendMessage(
	ctx context.Context,
	order *manuforder.ManufOrder,
	tpl message.Template,
) error {
	msg, err := message.NewMessage(kernel.NewUUID(), tpl, order.ID(), dataFor(order), s.clock.Now())
	if err != nil {
		return err
	}
	return s.messages.AddMessage(ctx, msg)
}

func dataFor(order *manuforder.ManufOrder) ManufOrderMessageData {
	return ManufOrderMessageData{
		ID:                order.ID().String(),
		Ref:               order.Ref(),
		Status:            order.Status().String(),
		Qty:               order.Qty().String(),
		Unit:              order.Unit(),
		PlannedStartDateT: order.PlannedStartDateT(),
		PlannedEndDateT:   order.PlannedEndDateT(),
		RealStartDateT:    order.RealStartDateT(),
		RealEndDateT:      order.RealEndDateT(),
		EndTimeDifference: order.EndTimeDifference(),
	}
}
