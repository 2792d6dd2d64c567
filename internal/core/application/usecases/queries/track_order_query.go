// Package queries contains read-only operations for the ordering system.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly, bypassing the aggregate and its unit of work.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the public view of an order by its tracking id.
// Clients poll this after placing an order; the internal order id is never
// exposed.
type TrackOrderQuery struct { //nolint:recvcheck //using for validation
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the given tracking id.
func NewTrackOrderQuery(trackingID kernel.TrackingID) (TrackOrderQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackOrderQueryIsNotConstructed if validation fails.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingID returns the tracking id being looked up.
func (q TrackOrderQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// TrackOrderQueryResponse is the public tracking view of an order.
type TrackOrderQueryResponse struct {
	TrackingID      kernel.TrackingID
	Status          string
	FailureMessages []string
}
