package services

import (
	"context"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/pending"
)

// PendingBookingService exposes the caller's pending-booking marker
type PendingBookingService struct {
	store pending.Store
}

var _ PendingBookingServiceInterface = (*PendingBookingService)(nil)

// NewPendingBookingService creates a new pending booking service
func NewPendingBookingService(store pending.Store) *PendingBookingService {
	return &PendingBookingService{store: store}
}

// GetPendingBooking returns the marker saved when the user was sent to checkout
func (s *PendingBookingService) GetPendingBooking(ctx context.Context, userID int64) (*models.PendingBooking, error) {
	return s.store.Get(ctx, userID)
}

// ClearPendingBooking removes the marker once payment has been handled
func (s *PendingBookingService) ClearPendingBooking(ctx context.Context, userID int64) error {
	return s.store.Delete(ctx, userID)
}
