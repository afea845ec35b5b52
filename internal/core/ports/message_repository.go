package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/message"
)

// MessageRepository stores notification templates and the outbox of rendered messages.
type MessageRepository interface {
	AddTemplate(ctx context.Context, tpl message.Template) error

	// GetTemplate returns errs.ObjectNotFoundError when no template has that name.
	GetTemplate(ctx context.Context, name string) (message.Template, error)

	AddMessage(ctx context.Context, msg *message.Message) error
	GetMessagesFor(ctx context.Context, relatedID kernel.UUID) ([]*message.Message, error)
}
