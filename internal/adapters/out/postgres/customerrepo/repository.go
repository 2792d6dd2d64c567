// Package customerrepo provides read access to the customer replica. Rows
// are replicated from the customer service; the ordering core only needs to
// know that a customer exists before accepting an order.
package customerrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDTO represents the replicated customer row.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string
	FirstName string
	LastName  string
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Exists reports whether a customer row with the given identity is present.
func (r *GormCustomerRepository) Exists(ctx context.Context, id kernel.CustomerID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&CustomerDTO{}).
		Where("id = ?", id.UUID().Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
