package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through the NewRestaurant factory method.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is a read-only snapshot of a restaurant and its catalog, loaded
// for validating an order at creation time. The order core never mutates it.
type Restaurant struct {
	id       kernel.RestaurantID
	active   bool
	products []Product

	isConstructed bool
}

// NewRestaurant creates a restaurant snapshot. The product list may be empty;
// an empty catalog simply fails every product lookup during validation.
func NewRestaurant(id kernel.RestaurantID, active bool, products []Product) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &Restaurant{
		id:            id,
		active:        active,
		products:      append([]Product(nil), products...),
		isConstructed: true,
	}, nil
}

// Validate ensures the snapshot was created through NewRestaurant.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() kernel.RestaurantID {
	return r.id
}

// IsActive reports whether the restaurant currently accepts orders.
func (r *Restaurant) IsActive() bool {
	return r.active
}

// Products returns a copy of the catalog.
func (r *Restaurant) Products() []Product {
	return append([]Product(nil), r.products...)
}

// ProductByID looks up a catalog product by identity. Matching is purely
// id-based; name and price are whatever the catalog says.
func (r *Restaurant) ProductByID(id kernel.ProductID) (Product, bool) {
	for _, p := range r.products {
		if p.ID().IsEqual(id) {
			return p, true
		}
	}
	return Product{}, false
}
