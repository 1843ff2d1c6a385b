package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/services"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingMocks struct {
	bookings *MockBookingRepository
	payments *MockPaymentRepository
	profiles *MockMentorProfileRepository
	provider *MockPaymentProvider
}

func newBookingService(withProvider bool) (*services.BookingService, *bookingMocks) {
	m := &bookingMocks{
		bookings: new(MockBookingRepository),
		payments: new(MockPaymentRepository),
		profiles: new(MockMentorProfileRepository),
		provider: new(MockPaymentProvider),
	}
	var provider payment.Provider
	if withProvider {
		provider = m.provider
	}
	return services.NewBookingService(m.bookings, m.payments, m.profiles, provider, nil, testConfig()), m
}

func bookingRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{UserID: 5, MentorID: 7, SlotID: 42, Notes: "Session type: standard"}
}

func createdBooking() *models.Booking {
	return &models.Booking{ID: 101, UserID: 5, MentorID: 7, SlotID: 42, Notes: "Session type: standard", Status: models.BookingStatusPendingPayment}
}

func TestBookingService_CreateBooking_WithPayment(t *testing.T) {
	svc, m := newBookingService(true)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).Return(createdBooking(), nil).Once()
	m.profiles.On("GetHourlyRate", mock.Anything, int64(7)).Return(floatPtr(1500), nil)
	m.provider.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(r payment.CheckoutRequest) bool {
		return r.BookingID == 101 && r.Amount == 1500 && r.Currency == "inr"
	})).Return(&payment.Checkout{OrderID: "cs_1", PaymentURL: "https://pay.example/cs_1"}, nil).Once()
	m.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.BookingID == 101 && p.OrderID == "cs_1" && p.Status == models.PaymentStatusPending
	})).Return(&models.Payment{ID: 1}, nil).Once()

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.Booking.ID)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "cs_1", resp.Payment.OrderID)
	assert.Equal(t, "https://pay.example/cs_1", resp.Payment.PaymentURL)

	m.provider.AssertExpectations(t)
	m.payments.AssertExpectations(t)
}

func TestBookingService_CreateBooking_PaymentsDisabled(t *testing.T) {
	svc, m := newBookingService(false)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).Return(createdBooking(), nil).Once()

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Payment)
	m.profiles.AssertNotCalled(t, "GetHourlyRate")
}

func TestBookingService_CreateBooking_NoRateSkipsPayment(t *testing.T) {
	svc, m := newBookingService(true)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).Return(createdBooking(), nil).Once()
	m.profiles.On("GetHourlyRate", mock.Anything, int64(7)).Return(nil, nil)

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Payment)
	m.provider.AssertNotCalled(t, "CreateCheckout")
}

func TestBookingService_CreateBooking_ProviderFailureKeepsBooking(t *testing.T) {
	svc, m := newBookingService(true)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).Return(createdBooking(), nil).Once()
	m.profiles.On("GetHourlyRate", mock.Anything, int64(7)).Return(floatPtr(1500), nil)
	m.provider.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.Booking.ID)
	assert.Nil(t, resp.Payment)
	m.payments.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_PaymentRecordFailureStillReturnsCheckout(t *testing.T) {
	svc, m := newBookingService(true)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).Return(createdBooking(), nil).Once()
	m.profiles.On("GetHourlyRate", mock.Anything, int64(7)).Return(floatPtr(900), nil)
	m.provider.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&payment.Checkout{OrderID: "cs_2", PaymentURL: "https://pay.example/cs_2"}, nil)
	m.payments.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	resp, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "cs_2", resp.Payment.OrderID)
}

func TestBookingService_CreateBooking_SlotUnavailable(t *testing.T) {
	svc, m := newBookingService(true)
	req := bookingRequest()

	m.bookings.On("CreateWithSlotLock", mock.Anything, req).
		Return(nil, apperrors.SlotUnavailableError("Selected slot is no longer available. Please choose another time."))

	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrSlotUnavailable)
	m.provider.AssertNotCalled(t, "CreateCheckout")
}

func TestBookingService_GetBooking_Access(t *testing.T) {
	svc, m := newBookingService(false)
	ctx := context.Background()
	m.bookings.On("GetByID", ctx, int64(101)).Return(createdBooking(), nil)
	m.payments.On("GetByBookingID", ctx, int64(101)).Return(nil, apperrors.NotFoundError("payment"))

	details, err := svc.GetBooking(ctx, 5, 101)
	require.NoError(t, err, "booking user")
	assert.Equal(t, int64(101), details.Booking.ID)
	assert.Nil(t, details.Payment)

	_, err = svc.GetBooking(ctx, 7, 101)
	assert.NoError(t, err, "mentor")

	_, err = svc.GetBooking(ctx, 8, 101)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	m.payments.AssertNumberOfCalls(t, "GetByBookingID", 2)
}

func TestBookingService_GetBooking_IncludesPayment(t *testing.T) {
	svc, m := newBookingService(true)
	ctx := context.Background()
	m.bookings.On("GetByID", ctx, int64(101)).Return(createdBooking(), nil)
	m.payments.On("GetByBookingID", ctx, int64(101)).
		Return(&models.Payment{BookingID: 101, OrderID: "cs_1", PaymentURL: "https://pay.example/cs_1"}, nil)

	details, err := svc.GetBooking(ctx, 5, 101)
	require.NoError(t, err)
	require.NotNil(t, details.Payment)
	assert.Equal(t, "cs_1", details.Payment.OrderID)
	assert.Equal(t, "https://pay.example/cs_1", details.Payment.PaymentURL)
}

func TestBookingService_GetBooking_PaymentLookupFails(t *testing.T) {
	svc, m := newBookingService(true)
	ctx := context.Background()
	m.bookings.On("GetByID", ctx, int64(101)).Return(createdBooking(), nil)
	m.payments.On("GetByBookingID", ctx, int64(101)).Return(nil, errors.New("db down"))

	_, err := svc.GetBooking(ctx, 5, 101)
	assert.ErrorContains(t, err, "db down")
}

func TestBookingService_GetBooking_NotFound(t *testing.T) {
	svc, m := newBookingService(false)
	ctx := context.Background()
	m.bookings.On("GetByID", ctx, int64(9)).Return(nil, apperrors.NotFoundError("booking"))

	_, err := svc.GetBooking(ctx, 5, 9)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
