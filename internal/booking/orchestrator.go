// Package booking turns "book this coach at this date and time" into a
// reserved slot, an optional checkout and a redirect for the caller.
package booking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/pending"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/coachhub/coachhub-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Caller-facing messages
const (
	MsgLoginRequired      = "Please login first"
	MsgDateTimeRequired   = "Please select both date and time"
	MsgSlotUnavailable    = "Selected slot is no longer available. Please choose another time."
	MsgRedirectingPayment = "Booking created! Redirecting to payment..."
	MsgCompletePayment    = "Booking created! Please complete payment."
)

// SessionType is the length of session the caller asked for
type SessionType string

const (
	SessionQuick    SessionType = "quick"
	SessionStandard SessionType = "standard"
	SessionExtended SessionType = "extended"
)

// ParseSessionType returns standard for an empty value
func ParseSessionType(s string) (SessionType, error) {
	switch SessionType(s) {
	case "":
		return SessionStandard, nil
	case SessionQuick, SessionStandard, SessionExtended:
		return SessionType(s), nil
	}
	return "", apperrors.InvalidInputError("session_type", "must be one of quick, standard, extended")
}

// Next says where the caller goes after booking
type Next string

const (
	NextPayment       Next = "payment"
	NextManualPayment Next = "manual_payment"
)

// SlotSource lists a mentor's unbooked, active slots on a date
type SlotSource interface {
	ListOpenSlots(ctx context.Context, mentorID int64, date string) ([]*models.Slot, error)
}

// BookingCreator reserves a slot and optionally starts a checkout
type BookingCreator interface {
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error)
}

// Request is one book-session attempt. UserID is the authenticated caller.
type Request struct {
	UserID      int64
	MentorID    int64
	Date        string
	Time        string
	SessionType SessionType
}

// Outcome is the booking made and the redirect to follow
type Outcome struct {
	BookingID   int64
	OrderID     string
	Next        Next
	RedirectURL string
	Message     string
}

// Orchestrator runs the book-session flow
type Orchestrator struct {
	slots            SlotSource
	bookings         BookingCreator
	markers          pending.Store
	manualPaymentURL string
}

// NewOrchestrator wires the flow to its collaborators. manualPaymentURL is the
// view callers land on when no checkout was started.
func NewOrchestrator(slots SlotSource, bookings BookingCreator, markers pending.Store, manualPaymentURL string) *Orchestrator {
	return &Orchestrator{
		slots:            slots,
		bookings:         bookings,
		markers:          markers,
		manualPaymentURL: manualPaymentURL,
	}
}

// BookSession finds the slot starting at req.Time, books it and decides the redirect.
// The pending-booking marker is saved before a payment redirect is returned.
func (o *Orchestrator) BookSession(ctx context.Context, req Request) (out *Outcome, err error) {
	ctx, span := tracing.StartSpan(ctx, "Orchestrator.BookSession",
		attribute.Int64("mentor_id", req.MentorID),
		attribute.String("date", req.Date),
		attribute.String("time", req.Time))
	defer func() { tracing.EndSpan(span, err) }()

	if req.UserID <= 0 {
		metrics.SessionBookings.WithLabelValues("auth_required").Inc()
		return nil, apperrors.AuthRequiredError(MsgLoginRequired)
	}
	if req.Date == "" || req.Time == "" {
		metrics.SessionBookings.WithLabelValues("validation").Inc()
		return nil, apperrors.ValidationError(MsgDateTimeRequired)
	}
	if req.SessionType == "" {
		req.SessionType = SessionStandard
	}

	slots, err := o.slots.ListOpenSlots(ctx, req.MentorID, req.Date)
	if err != nil {
		metrics.SessionBookings.WithLabelValues("error").Inc()
		return nil, asTransport("fetch available slots", err)
	}

	slot := MatchSlot(slots, req.Time)
	if slot == nil {
		metrics.SessionBookings.WithLabelValues("slot_unavailable").Inc()
		logger.Info("No open slot at requested time",
			zap.Int64("mentor_id", req.MentorID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Int("open_slots", len(slots)))
		return nil, apperrors.SlotUnavailableError(MsgSlotUnavailable)
	}

	resp, err := o.bookings.CreateBooking(ctx, &models.CreateBookingRequest{
		UserID:   req.UserID,
		MentorID: req.MentorID,
		SlotID:   slot.ID,
		Notes:    "Session type: " + string(req.SessionType),
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSlotUnavailable) {
			metrics.SessionBookings.WithLabelValues("slot_unavailable").Inc()
			return nil, apperrors.SlotUnavailableError(MsgSlotUnavailable)
		}
		metrics.SessionBookings.WithLabelValues("error").Inc()
		return nil, asTransport("create booking", err)
	}
	if resp == nil || resp.Booking == nil {
		metrics.SessionBookings.WithLabelValues("error").Inc()
		return nil, apperrors.TransportError("create booking", fmt.Errorf("empty booking response"))
	}

	bookingID := resp.Booking.ID

	if resp.Payment != nil && resp.Payment.PaymentURL != "" {
		marker := models.PendingBooking{BookingID: bookingID, OrderID: resp.Payment.OrderID}
		if err := o.markers.Save(ctx, req.UserID, marker); err != nil {
			logger.Error("Failed to save pending booking marker",
				zap.Error(err),
				zap.Int64("user_id", req.UserID),
				zap.Int64("booking_id", bookingID))
		}

		metrics.SessionBookings.WithLabelValues("payment").Inc()
		return &Outcome{
			BookingID:   bookingID,
			OrderID:     resp.Payment.OrderID,
			Next:        NextPayment,
			RedirectURL: resp.Payment.PaymentURL,
			Message:     MsgRedirectingPayment,
		}, nil
	}

	metrics.SessionBookings.WithLabelValues("manual_payment").Inc()
	return &Outcome{
		BookingID:   bookingID,
		Next:        NextManualPayment,
		RedirectURL: ManualPaymentRedirect(o.manualPaymentURL, bookingID),
		Message:     MsgCompletePayment,
	}, nil
}

// MatchSlot returns the first slot whose start time's HH:MM prefix equals hhmm
func MatchSlot(slots []*models.Slot, hhmm string) *models.Slot {
	for _, s := range slots {
		if s == nil || len(s.StartTime) < 5 {
			continue
		}
		if s.StartTime[:5] == hhmm {
			return s
		}
	}
	return nil
}

// ManualPaymentRedirect appends bookingId to the manual payment view
func ManualPaymentRedirect(base string, bookingID int64) string {
	id := strconv.FormatInt(bookingID, 10)
	u, err := url.Parse(base)
	if err != nil {
		return base + "?bookingId=" + id
	}
	q := u.Query()
	q.Set("bookingId", id)
	u.RawQuery = q.Encode()
	return u.String()
}

// asTransport keeps domain errors and wraps everything else as a transport failure
func asTransport(operation string, err error) error {
	for _, domain := range []error{
		apperrors.ErrInvalidInput,
		apperrors.ErrUnauthorized,
		apperrors.ErrAccessDenied,
		apperrors.ErrNotFound,
		apperrors.ErrConflict,
		apperrors.ErrTransport,
	} {
		if apperrors.Is(err, domain) {
			return err
		}
	}
	return apperrors.TransportError(operation, err)
}
