package kernel

// Typed identifiers for the ordering domain. Each entity gets its own ID type
// built on the generic ID wrapper, so an OrderID can never be passed where a
// CustomerID is expected even though both are UUIDs underneath. Equality is
// purely value-based, which makes the IDs usable as map keys.

// ID is a generic identity wrapper. The type parameter K is a phantom type
// that only exists to make identifiers of different entities incompatible
// with each other.
type ID[K any] struct {
	value UUID
}

// NewID generates a fresh random identifier.
func NewID[K any]() ID[K] {
	return ID[K]{value: NewUUID()}
}

// IDFromUUID wraps an existing UUID into a typed identifier.
func IDFromUUID[K any](u UUID) ID[K] {
	return ID[K]{value: u}
}

// IDFromString parses a typed identifier from its string form.
func IDFromString[K any](s string) (ID[K], error) {
	u, err := UUIDFromString(s)
	if err != nil {
		return ID[K]{}, err
	}
	return ID[K]{value: u}, nil
}

// UUID returns the underlying untyped UUID.
func (i ID[K]) UUID() UUID {
	return i.value
}

// String returns the canonical string form of the identifier.
func (i ID[K]) String() string {
	return i.value.String()
}

// IsEqual compares two identifiers of the same type for value equality.
func (i ID[K]) IsEqual(other ID[K]) bool {
	return i.value.IsEqual(other.value)
}

// Validate rejects zero-value identifiers that bypassed a constructor.
func (i ID[K]) Validate() error {
	return i.value.Validate()
}

// MarshalText implements encoding.TextMarshaler.
func (i ID[K]) MarshalText() ([]byte, error) {
	return i.value.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID[K]) UnmarshalText(text []byte) error {
	return i.value.UnmarshalText(text)
}

// Phantom kinds. These carry no data; they only pin the type parameter of ID.
type (
	orderKind      struct{}
	customerKind   struct{}
	restaurantKind struct{}
	productKind    struct{}
	orderItemKind  struct{}
	trackingKind   struct{}
)

// Identifier types used across the domain model.
type (
	// OrderID is the stable internal identity of an order aggregate.
	OrderID = ID[orderKind]

	// CustomerID references the customer that placed an order.
	CustomerID = ID[customerKind]

	// RestaurantID references the restaurant an order is placed against.
	RestaurantID = ID[restaurantKind]

	// ProductID identifies a catalog product; order items are matched against
	// restaurant catalogs by this identity.
	ProductID = ID[productKind]

	// OrderItemID identifies a single line item within an order.
	OrderItemID = ID[orderItemKind]

	// TrackingID is the externally exposed identity of an order and the saga
	// correlation id. It is distinct from OrderID and never reused once
	// assigned.
	TrackingID = ID[trackingKind]
)

// NewOrderID generates a new order identifier.
func NewOrderID() OrderID { return NewID[orderKind]() }

// NewCustomerID generates a new customer identifier.
func NewCustomerID() CustomerID { return NewID[customerKind]() }

// NewRestaurantID generates a new restaurant identifier.
func NewRestaurantID() RestaurantID { return NewID[restaurantKind]() }

// NewProductID generates a new product identifier.
func NewProductID() ProductID { return NewID[productKind]() }

// NewOrderItemID generates a new order item identifier.
func NewOrderItemID() OrderItemID { return NewID[orderItemKind]() }

// NewTrackingID generates a new tracking identifier.
func NewTrackingID() TrackingID { return NewID[trackingKind]() }

// OrderIDFromUUID wraps a stored UUID into an OrderID.
func OrderIDFromUUID(u UUID) OrderID { return IDFromUUID[orderKind](u) }

// CustomerIDFromUUID wraps a stored UUID into a CustomerID.
func CustomerIDFromUUID(u UUID) CustomerID { return IDFromUUID[customerKind](u) }

// RestaurantIDFromUUID wraps a stored UUID into a RestaurantID.
func RestaurantIDFromUUID(u UUID) RestaurantID { return IDFromUUID[restaurantKind](u) }

// ProductIDFromUUID wraps a stored UUID into a ProductID.
func ProductIDFromUUID(u UUID) ProductID { return IDFromUUID[productKind](u) }

// OrderItemIDFromUUID wraps a stored UUID into an OrderItemID.
func OrderItemIDFromUUID(u UUID) OrderItemID { return IDFromUUID[orderItemKind](u) }

// TrackingIDFromUUID wraps a stored UUID into a TrackingID.
func TrackingIDFromUUID(u UUID) TrackingID { return IDFromUUID[trackingKind](u) }

// OrderIDFromString parses an OrderID from its string form.
func OrderIDFromString(s string) (OrderID, error) { return IDFromString[orderKind](s) }

// CustomerIDFromString parses a CustomerID from its string form.
func CustomerIDFromString(s string) (CustomerID, error) { return IDFromString[customerKind](s) }

// RestaurantIDFromString parses a RestaurantID from its string form.
func RestaurantIDFromString(s string) (RestaurantID, error) { return IDFromString[restaurantKind](s) }

// ProductIDFromString parses a ProductID from its string form.
func ProductIDFromString(s string) (ProductID, error) { return IDFromString[productKind](s) }

// OrderItemIDFromString parses an OrderItemID from its string form.
func OrderItemIDFromString(s string) (OrderItemID, error) { return IDFromString[orderItemKind](s) }

// TrackingIDFromString parses a TrackingID from its string form.
func TrackingIDFromString(s string) (TrackingID, error) { return IDFromString[trackingKind](s) }
