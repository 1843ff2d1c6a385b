package services

import (
	"context"

	"github.com/coachhub/coachhub-api/internal/models"
)

// MentorProfileServiceInterface defines the Profile Store operations
type MentorProfileServiceInterface interface {
	CreateOrUpdateMentorProfile(ctx context.Context, req *models.MentorProfileRequest, resume *models.ResumeFile) (*models.MentorProfileResponse, bool, error)
	GetMentorProfile(ctx context.Context, userID int64) (*models.MentorProfile, error)
}

// SlotServiceInterface defines slot listing and publishing
type SlotServiceInterface interface {
	ListSlots(ctx context.Context, filter models.SlotFilter) ([]*models.Slot, error)
	CreateSlot(ctx context.Context, mentorUserID int64, req *models.CreateSlotRequest) (*models.Slot, error)
}

// BookingServiceInterface defines booking creation and lookup
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error)
	GetBooking(ctx context.Context, requesterID, bookingID int64) (*models.BookingDetails, error)
}

// PendingBookingServiceInterface reads back and clears pending-booking markers
type PendingBookingServiceInterface interface {
	GetPendingBooking(ctx context.Context, userID int64) (*models.PendingBooking, error)
	ClearPendingBooking(ctx context.Context, userID int64) error
}
