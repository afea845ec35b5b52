// Package messagerepo stores notification templates and the outbox of rendered messages.
package messagerepo

import (
	"context"
	"errors"
	"time"

	"production/internal/adapters/out/postgres"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/message"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.MessageRepository = (*GormMessageRepository)(nil)

type TemplateDTO struct {
	Name    string `gorm:"type:varchar(255);primaryKey"`
	Subject string `gorm:"type:text;not null"`
	Body    string `gorm:"type:text;not null"`
}

func (TemplateDTO) TableName() string {
	return "message_templates"
}

type MessageDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TemplateName string    `gorm:"type:varchar(255);not null"`
	RelatedID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject      string    `gorm:"type:text;not null"`
	Body         string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

func (MessageDTO) TableName() string {
	return "messages"
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) AddTemplate(ctx context.Context, tpl message.Template) error {
	dto := TemplateDTO{Name: tpl.Name(), Subject: tpl.Subject(), Body: tpl.Body()}
	return postgres.Conn(ctx, r.db).Create(&dto).Error
}

func (r *GormMessageRepository) GetTemplate(ctx context.Context, name string) (message.Template, error) {
	var dto TemplateDTO
	if err := postgres.Conn(ctx, r.db).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Template{}, errs.NewObjectNotFoundError("message template", name)
		}
		return message.Template{}, err
	}
	return message.NewTemplate(dto.Name, dto.Subject, dto.Body)
}

func (r *GormMessageRepository) AddMessage(ctx context.Context, msg *message.Message) error {
	dto := MessageDTO{
		ID:           msg.ID().Bytes(),
		TemplateName: msg.TemplateName(),
		RelatedID:    msg.RelatedID().Bytes(),
		Subject:      msg.Subject(),
		Body:         msg.Body(),
		CreatedAt:    msg.CreatedAt(),
	}
	if err := postgres.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		return err
	}

	postgres.TrackAggregate(ctx, msg.ID(), msg)
	return nil
}

// GetMessagesFor returns the messages about relatedID, oldest first.
func (r *GormMessageRepository) GetMessagesFor(ctx context.Context, relatedID kernel.UUID) ([]*message.Message, error) {
	var dtos []MessageDTO
	err := postgres.Conn(ctx, r.db).
		Where("related_id = ?", relatedID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*message.Message, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		msg, err := message.RestoreMessage(id, dto.TemplateName, relatedID, dto.Subject, dto.Body, dto.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
