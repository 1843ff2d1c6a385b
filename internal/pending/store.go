package pending

import (
	"context"
	"strconv"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/pkg/metrics"
)

// keyPrefix namespaces pending-booking markers per user
const keyPrefix = "pendingBooking:"

// DefaultTTL is how long a marker survives without being read back
const DefaultTTL = 24 * time.Hour

// Store keeps at most one pending-booking marker per user.
// Get returns an ErrNotFound-wrapped error when no marker exists.
type Store interface {
	Save(ctx context.Context, userID int64, marker models.PendingBooking) error
	Get(ctx context.Context, userID int64) (*models.PendingBooking, error)
	Delete(ctx context.Context, userID int64) error
	Ping(ctx context.Context) error
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

func record(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.PendingBookingMarkers.WithLabelValues(operation, status).Inc()
}
