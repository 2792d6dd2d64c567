// Package outboxrepo persists domain events awaiting publication. Messages
// are written in the same transaction as the aggregate change that produced
// them; the dispatch job reads unpublished rows and hands them to the broker.
package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxMessageDTO represents a persisted outbox row.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string
	Payload     []byte     `gorm:"type:jsonb"`
	OccurredAt  time.Time  `gorm:"index"`
	Attempts    int
	LastError   string
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a message within the ambient transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	if err := message.ID.Validate(); err != nil {
		return err
	}

	dto := OutboxMessageDTO{
		ID:         message.ID.Bytes(),
		Name:       message.Name,
		Payload:    message.Payload,
		OccurredAt: message.OccurredAt,
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves up to limit unpublished messages, oldest first.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			Name:        dto.Name,
			Payload:     dto.Payload,
			OccurredAt:  dto.OccurredAt,
			Attempts:    dto.Attempts,
			LastError:   dto.LastError,
			PublishedAt: dto.PublishedAt,
		})
	}

	return messages, nil
}

// MarkPublished records a successful publication.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("published_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessageID", id.String())
	}

	return nil
}

// RecordFailure increments the attempt counter and stores the failure
// reason. The message stays eligible for the next dispatch run.
func (r *GormOutboxRepository) RecordFailure(ctx context.Context, id kernel.UUID, reason string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxMessageID", id.String())
	}

	return nil
}
