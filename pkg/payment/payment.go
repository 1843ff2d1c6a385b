package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coachhub/coachhub-api/pkg/circuitbreaker"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// ErrInvalidAmount is returned for non-positive checkout amounts
var ErrInvalidAmount = errors.New("payment amount must be positive")

// CheckoutRequest describes a single-session checkout for a booking
type CheckoutRequest struct {
	BookingID   int64
	UserID      int64
	MentorID    int64
	Amount      float64
	Currency    string
	Description string
}

// Checkout is a started payment the caller must complete at PaymentURL
type Checkout struct {
	OrderID    string
	PaymentURL string
}

// Provider starts hosted checkouts
type Provider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
}

// checkoutSessions is the part of the Stripe API client used here
type checkoutSessions interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeProvider creates Stripe Checkout sessions behind a circuit breaker
type StripeProvider struct {
	sessions   checkoutSessions
	breaker    *gobreaker.CircuitBreaker
	successURL string
	cancelURL  string
}

var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a provider backed by the Stripe API
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return newStripeProvider(sc.CheckoutSessions, successURL, cancelURL)
}

func newStripeProvider(sessions checkoutSessions, successURL, cancelURL string) *StripeProvider {
	return &StripeProvider{
		sessions:   sessions,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("stripe")),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateCheckout starts a Stripe Checkout session for one booking.
// The session id is the order id.
func (p *StripeProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	start := time.Now()
	operation := "createCheckoutSession"

	amount, err := ToMinorUnits(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	bookingID := strconv.FormatInt(req.BookingID, 10)
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(withBookingID(p.successURL, bookingID)),
		CancelURL:         stripe.String(withBookingID(p.cancelURL, bookingID)),
		ClientReferenceID: stripe.String(bookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("user_id", strconv.FormatInt(req.UserID, 10))
	params.AddMetadata("mentor_id", strconv.FormatInt(req.MentorID, 10))

	session, err := circuitbreaker.Execute(p.breaker, func() (*stripe.CheckoutSession, error) {
		return p.sessions.New(params)
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		status := "error"
		if circuitbreaker.IsRejected(err) {
			status = "rejected"
		}
		metrics.PaymentRequestDuration.WithLabelValues(operation, status).Observe(duration)
		metrics.PaymentRequestTotal.WithLabelValues(operation, status).Inc()
		logger.LogAPICall(ctx, "stripe", operation, status, duration,
			zap.Error(err),
			zap.Int64("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	metrics.PaymentRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.PaymentRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "stripe", operation, "success", duration,
		zap.Int64("booking_id", req.BookingID),
		zap.String("session_id", session.ID),
	)

	return &Checkout{OrderID: session.ID, PaymentURL: session.URL}, nil
}

// zeroDecimalCurrencies are charged in whole units by Stripe
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// IsZeroDecimal reports whether currency has no minor unit
func IsZeroDecimal(currency string) bool {
	return zeroDecimalCurrencies[strings.ToLower(currency)]
}

// ToMinorUnits converts a decimal amount to the smallest unit of currency
func ToMinorUnits(amount float64, currency string) (int64, error) {
	factor := 100.0
	if IsZeroDecimal(currency) {
		factor = 1
	}
	minor := int64(math.Round(amount * factor))
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// withBookingID appends bookingId to a return URL
func withBookingID(rawURL, bookingID string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("bookingId", bookingID)
	u.RawQuery = q.Encode()
	return u.String()
}
