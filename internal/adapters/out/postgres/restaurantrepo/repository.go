// Package restaurantrepo provides read access to the restaurant catalog
// replica. The ordering service does not own restaurant data; rows in these
// tables are replicated from the restaurant service and read here for order
// validation.
package restaurantrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestaurantDTO represents the replicated restaurant row.
type RestaurantDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string
	Active   bool
	Products []ProductDTO `gorm:"foreignKey:RestaurantID;references:ID"`
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO represents a replicated catalog product row.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index"`
	Name         string
	Price        decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// Get retrieves a restaurant snapshot with its catalog by identity.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.RestaurantID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	err := r.db.WithContext(ctx).Preload("Products").
		First(&dto, "id = ?", id.UUID().Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurantID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	restaurantUUID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	products := make([]restaurant.Product, 0, len(dto.Products))
	for _, productDTO := range dto.Products {
		productUUID, productErr := kernel.UUIDFromBytes(productDTO.ID[:])
		if productErr != nil {
			return nil, productErr
		}

		product, productErr := restaurant.NewProduct(
			kernel.ProductIDFromUUID(productUUID),
			productDTO.Name,
			kernel.NewMoney(productDTO.Price),
		)
		if productErr != nil {
			return nil, productErr
		}

		products = append(products, product)
	}

	return restaurant.NewRestaurant(kernel.RestaurantIDFromUUID(restaurantUUID), dto.Active, products)
}
