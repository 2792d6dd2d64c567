package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves the mutable state of an existing order: status, failure
// messages, and version. Items are immutable after creation and are not
// touched. The write carries an optimistic check on the version the aggregate
// was loaded with; a concurrent writer that got there first makes the check
// fail with errs.VersionIsInvalidError and nothing is written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":           dto.Status,
			"failure_messages": dto.FailureMessages,
			"version":          dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order",
			fmt.Errorf("no row with id %s at version %d", aggregate.ID(), aggregate.Version()))
	}

	return nil
}

// GetByID retrieves an order with its items by internal identity.
func (r *GormOrderRepository) GetByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "id = ?", id.UUID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves an order with its items by tracking identity.
func (r *GormOrderRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "tracking_id = ?", trackingID.UUID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingID", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOverdue retrieves orders stuck in one of the given statuses since before
// the deadline, ordered by staleness.
func (r *GormOrderRepository) GetOverdue(ctx context.Context, statuses []order.Status, olderThan time.Time) ([]*order.Order, error) {
	rawStatuses := make([]int, 0, len(statuses))
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return nil, err
		}
		rawStatuses = append(rawStatuses, int(status))
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status IN ? AND updated_at < ?", rawStatuses, olderThan).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
