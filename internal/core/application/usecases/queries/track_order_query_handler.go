package queries

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler serves order tracking lookups straight from the
// database.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking lookup. Returns errs.ObjectNotFoundError when
// no order carries the tracking id.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			status,
			failure_messages
		FROM orders
		WHERE tracking_id = ?
	`, query.TrackingID().UUID().Bytes()).Rows()
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackOrderQueryResponse{}, err
		}
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("trackingID", query.TrackingID())
	}

	var (
		rawTrackingID  uuid.UUID
		rawStatus      int
		rawFailureList string
	)
	if err = rows.Scan(&rawTrackingID, &rawStatus, &rawFailureList); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	trackingUUID, err := kernel.UUIDFromBytes(rawTrackingID[:])
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	trackingID := kernel.TrackingIDFromUUID(trackingUUID)

	status := order.Status(rawStatus)
	if err = status.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var failureMessages []string
	if rawFailureList != "" {
		failureMessages = strings.Split(rawFailureList, order.FailureMessageDelimiter)
	}

	return TrackOrderQueryResponse{
		TrackingID:      trackingID,
		Status:          status.String(),
		FailureMessages: failureMessages,
	}, nil
}
