package handlers

import (
	"context"

	"github.com/coachhub/coachhub-api/internal/booking"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockMentorProfileService struct {
	mock.Mock
}

func (m *MockMentorProfileService) CreateOrUpdateMentorProfile(ctx context.Context, req *models.MentorProfileRequest, resume *models.ResumeFile) (*models.MentorProfileResponse, bool, error) {
	args := m.Called(ctx, req, resume)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.MentorProfileResponse), args.Bool(1), args.Error(2)
}

func (m *MockMentorProfileService) GetMentorProfile(ctx context.Context, userID int64) (*models.MentorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorProfile), args.Error(1)
}

type MockSlotService struct {
	mock.Mock
}

func (m *MockSlotService) ListSlots(ctx context.Context, filter models.SlotFilter) ([]*models.Slot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Slot), args.Error(1)
}

func (m *MockSlotService) CreateSlot(ctx context.Context, mentorUserID int64, req *models.CreateSlotRequest) (*models.Slot, error) {
	args := m.Called(ctx, mentorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CreateBookingResponse), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, requesterID, bookingID int64) (*models.BookingDetails, error) {
	args := m.Called(ctx, requesterID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingDetails), args.Error(1)
}

type MockPendingBookingService struct {
	mock.Mock
}

func (m *MockPendingBookingService) GetPendingBooking(ctx context.Context, userID int64) (*models.PendingBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingBooking), args.Error(1)
}

func (m *MockPendingBookingService) ClearPendingBooking(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockSessionBooker struct {
	mock.Mock
}

func (m *MockSessionBooker) BookSession(ctx context.Context, req booking.Request) (*booking.Outcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Outcome), args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }
