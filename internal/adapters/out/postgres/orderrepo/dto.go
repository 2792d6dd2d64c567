// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows.
package orderrepo

import (
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The tracking id carries a unique index: it is the lookup key for saga
// responses and client polling. UpdatedAt feeds the saga timeout job.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid"`
	TrackingID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Address         AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status          int             `gorm:"index"`
	FailureMessages string
	Version         int
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
	UpdatedAt       time.Time      `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid"`
	Street     string
	PostalCode string
	City       string
}

// OrderItemDTO represents a persisted order line item. The product name and
// price are the catalog values confirmed at order creation.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid"`
	ProductName string
	Quantity    int
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID().UUID().Bytes(),
			OrderID:     aggregate.ID().UUID().Bytes(),
			ProductID:   item.Product().ID().UUID().Bytes(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price().Amount(),
			Subtotal:    item.Subtotal().Amount(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().UUID().Bytes(),
		CustomerID:   aggregate.CustomerID().UUID().Bytes(),
		RestaurantID: aggregate.RestaurantID().UUID().Bytes(),
		TrackingID:   aggregate.TrackingID().UUID().Bytes(),
		Address: AddressDTO{
			ID:         aggregate.Address().ID().Bytes(),
			Street:     aggregate.Address().Street(),
			PostalCode: aggregate.Address().PostalCode(),
			City:       aggregate.Address().City(),
		},
		Price:           aggregate.Price().Amount(),
		Status:          int(aggregate.Status()),
		FailureMessages: strings.Join(aggregate.FailureMessages(), order.FailureMessageDelimiter),
		Version:         aggregate.Version(),
		Items:           items,
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := orderIDFromBytes(dto.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(id, itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	customerUUID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantUUID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	trackingUUID, err := kernel.UUIDFromBytes(dto.TrackingID[:])
	if err != nil {
		return nil, err
	}

	addressUUID, err := kernel.UUIDFromBytes(dto.Address.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.RestoreStreetAddress(
		addressUUID, dto.Address.Street, dto.Address.PostalCode, dto.Address.City)
	if err != nil {
		return nil, err
	}

	var failureMessages []string
	if dto.FailureMessages != "" {
		failureMessages = strings.Split(dto.FailureMessages, order.FailureMessageDelimiter)
	}

	return order.RestoreOrder(
		id,
		kernel.CustomerIDFromUUID(customerUUID),
		kernel.RestaurantIDFromUUID(restaurantUUID),
		address,
		kernel.NewMoney(dto.Price),
		items,
		kernel.TrackingIDFromUUID(trackingUUID),
		order.Status(dto.Status),
		failureMessages,
		dto.Version,
	)
}

func itemToDomain(orderID kernel.OrderID, dto OrderItemDTO) (*order.OrderItem, error) {
	itemUUID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productUUID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	price := kernel.NewMoney(dto.Price)
	product, err := restaurant.NewProduct(kernel.ProductIDFromUUID(productUUID), dto.ProductName, price)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderItem(
		kernel.OrderItemIDFromUUID(itemUUID),
		orderID,
		product,
		dto.Quantity,
		price,
		kernel.NewMoney(dto.Subtotal),
	)
}

func orderIDFromBytes(raw uuid.UUID) (kernel.OrderID, error) {
	u, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.OrderID{}, err
	}
	return kernel.OrderIDFromUUID(u), nil
}
