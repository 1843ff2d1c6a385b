package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/coachhub/coachhub-api/config"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/repository"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/coachhub/coachhub-api/pkg/payment"
	"github.com/coachhub/coachhub-api/pkg/tracing"
	"github.com/coachhub/coachhub-api/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// BookingService reserves slots and starts payment for new bookings
type BookingService struct {
	bookings   repository.BookingStore
	payments   repository.PaymentStore
	profiles   repository.MentorProfileStore
	provider   payment.Provider
	httpClient httpclient.Client
	config     *config.Config
}

var _ BookingServiceInterface = (*BookingService)(nil)

// NewBookingService creates a booking service. provider may be nil when
// payments are disabled; bookings then always go to manual payment.
func NewBookingService(
	bookings repository.BookingStore,
	payments repository.PaymentStore,
	profiles repository.MentorProfileStore,
	provider payment.Provider,
	httpClient httpclient.Client,
	cfg *config.Config,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		payments:   payments,
		profiles:   profiles,
		provider:   provider,
		httpClient: httpClient,
		config:     cfg,
	}
}

// CreateBooking atomically reserves the slot and inserts the booking, then tries
// to start a checkout. A failed checkout leaves the booking in place without payment.
func (s *BookingService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (resp *models.CreateBookingResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "BookingService.CreateBooking",
		attribute.Int64("mentor_id", req.MentorID),
		attribute.Int64("slot_id", req.SlotID))
	defer func() { tracing.EndSpan(span, err) }()

	booking, err := s.bookings.CreateWithSlotLock(ctx, req)
	if err != nil {
		status := "error"
		if apperrors.Is(err, apperrors.ErrSlotUnavailable) {
			status = "slot_unavailable"
		}
		metrics.BookingsCreated.WithLabelValues(status).Inc()
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues("success").Inc()
	logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("mentor_id", booking.MentorID),
		zap.Int64("slot_id", booking.SlotID))

	trigger.CallAsync(s.config.EventTriggers.BookingCreatedTriggerURL, strconv.FormatInt(booking.ID, 10), s.httpClient, nil)

	return &models.CreateBookingResponse{
		Booking: booking,
		Payment: s.startPayment(ctx, booking),
	}, nil
}

// startPayment returns nil when no checkout could be started
func (s *BookingService) startPayment(ctx context.Context, booking *models.Booking) *models.PaymentInfo {
	if s.provider == nil {
		return nil
	}

	rate, err := s.profiles.GetHourlyRate(ctx, booking.MentorID)
	if err != nil {
		logger.Error("Failed to read mentor rate, skipping payment",
			zap.Error(err), zap.Int64("booking_id", booking.ID))
		return nil
	}
	if rate == nil || *rate <= 0 {
		return nil
	}

	checkout, err := s.provider.CreateCheckout(ctx, payment.CheckoutRequest{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		MentorID:    booking.MentorID,
		Amount:      *rate,
		Currency:    s.config.Payment.Currency,
		Description: fmt.Sprintf("Coaching session #%d", booking.ID),
	})
	if err != nil {
		logger.Warn("Checkout not started, falling back to manual payment",
			zap.Error(err), zap.Int64("booking_id", booking.ID))
		return nil
	}

	if _, err := s.payments.Create(ctx, &models.Payment{
		BookingID:  booking.ID,
		OrderID:    checkout.OrderID,
		PaymentURL: checkout.PaymentURL,
		Amount:     *rate,
		Currency:   s.config.Payment.Currency,
		Status:     models.PaymentStatusPending,
	}); err != nil {
		// The checkout exists at the provider; the caller can still pay.
		logger.Error("Failed to record payment",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
			zap.String("order_id", checkout.OrderID))
	}

	return &models.PaymentInfo{OrderID: checkout.OrderID, PaymentURL: checkout.PaymentURL}
}

// GetBooking returns a booking visible to the requester (the booking user or the mentor)
// along with its started checkout
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID int64) (*models.BookingDetails, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requesterID && booking.MentorID != requesterID {
		return nil, apperrors.AccessDeniedError("You do not have access to this booking")
	}

	details := &models.BookingDetails{Booking: booking}

	p, err := s.payments.GetByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		details.Payment = &models.PaymentInfo{OrderID: p.OrderID, PaymentURL: p.PaymentURL}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	return details, nil
}
