package booking

import (
	"context"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/services"
)

// ServiceSlots reads open slots from the in-process slot service
type ServiceSlots struct {
	svc services.SlotServiceInterface
}

var (
	_ SlotSource     = (*ServiceSlots)(nil)
	_ BookingCreator = (services.BookingServiceInterface)(nil)
)

// NewServiceSlots adapts a slot service to SlotSource
func NewServiceSlots(svc services.SlotServiceInterface) *ServiceSlots {
	return &ServiceSlots{svc: svc}
}

// ListOpenSlots lists unbooked, active slots
func (s *ServiceSlots) ListOpenSlots(ctx context.Context, mentorID int64, date string) ([]*models.Slot, error) {
	booked, active := false, true
	return s.svc.ListSlots(ctx, models.SlotFilter{
		MentorID: mentorID,
		Date:     date,
		IsBooked: &booked,
		IsActive: &active,
	})
}
