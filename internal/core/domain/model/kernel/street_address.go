package kernel

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrStreetAddressIsNotConstructed is returned when a StreetAddress was not
// created through NewStreetAddress.
var ErrStreetAddressIsNotConstructed = errors.New("StreetAddress must be created via NewStreetAddress constructor")

// StreetAddress is the delivery address of an order. It is a value object
// with its own generated id, kept separate from the order identity so the
// same address can be re-submitted without colliding.
type StreetAddress struct {
	id         UUID
	street     string
	postalCode string
	city       string

	guard guard.ConstructorGuard
}

// NewStreetAddress creates a delivery address. All three components are
// required; a fresh address id is generated.
func NewStreetAddress(street, postalCode, city string) (StreetAddress, error) {
	if err := errors.Join(
		requireField("street", street),
		requireField("postal code", postalCode),
		requireField("city", city),
	); err != nil {
		return StreetAddress{}, err
	}

	return StreetAddress{
		id:         NewUUID(),
		street:     street,
		postalCode: postalCode,
		city:       city,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreStreetAddress rebuilds an address from persistence, keeping its
// original id.
func RestoreStreetAddress(id UUID, street, postalCode, city string) (StreetAddress, error) {
	if err := id.Validate(); err != nil {
		return StreetAddress{}, err
	}

	if err := errors.Join(
		requireField("street", street),
		requireField("postal code", postalCode),
		requireField("city", city),
	); err != nil {
		return StreetAddress{}, err
	}

	return StreetAddress{
		id:         id,
		street:     street,
		postalCode: postalCode,
		city:       city,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Validate ensures the address was created through a constructor.
func (a StreetAddress) Validate() error {
	return a.guard.Validate(ErrStreetAddressIsNotConstructed)
}

// ID returns the generated address id.
func (a StreetAddress) ID() UUID {
	return a.id
}

// Street returns the street line of the address.
func (a StreetAddress) Street() string {
	return a.street
}

// PostalCode returns the postal code of the address.
func (a StreetAddress) PostalCode() string {
	return a.postalCode
}

// City returns the city of the address.
func (a StreetAddress) City() string {
	return a.city
}

// IsEqual compares two addresses by their component values, ignoring the
// generated id.
func (a StreetAddress) IsEqual(other StreetAddress) bool {
	return a.street == other.street &&
		a.postalCode == other.postalCode &&
		a.city == other.city
}
