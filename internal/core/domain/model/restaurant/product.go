package restaurant

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Product is a catalog entry of a restaurant: a name and a unit price under a
// product identity. Equality is identity-based; order items are matched to
// catalog products solely by id.
type Product struct {
	id    kernel.ProductID
	name  string
	price kernel.Money
}

// NewProduct creates a fully described catalog product.
func NewProduct(id kernel.ProductID, name string, price kernel.Money) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}

	if name == "" {
		return Product{}, errs.NewValueIsRequiredError("product name")
	}

	if !price.IsGreaterThanZero() {
		return Product{}, errs.NewValueIsInvalidError("product price must be greater than 0")
	}

	return Product{id: id, name: name, price: price}, nil
}

// NewProductRef creates a product reference carrying only the identity. An
// order item starts out with such a reference plus the client-submitted
// price; name and authoritative price are filled in from the restaurant
// catalog during validation.
func NewProductRef(id kernel.ProductID) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}
	return Product{id: id}, nil
}

// Validate rejects products without an identity.
func (p Product) Validate() error {
	return p.id.Validate()
}

// ID returns the product identity.
func (p Product) ID() kernel.ProductID {
	return p.id
}

// Name returns the product name, empty for bare references.
func (p Product) Name() string {
	return p.name
}

// Price returns the unit price, zero for bare references.
func (p Product) Price() kernel.Money {
	return p.price
}

// IsEqual compares products by identity only.
func (p Product) IsEqual(other Product) bool {
	return p.id.IsEqual(other.id)
}
