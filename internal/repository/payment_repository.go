package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const paymentColumns = `id, booking_id, order_id, payment_url, amount::float8, currency, status, created_at`

// PaymentRepository records checkouts in PostgreSQL
type PaymentRepository struct {
	db DB
}

var _ PaymentStore = (*PaymentRepository)(nil)

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create stores a started checkout for a booking
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	start := time.Now()
	query := `
		INSERT INTO payments (booking_id, order_id, payment_url, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + paymentColumns

	created, err := scanPayment(r.db.QueryRow(ctx, query,
		p.BookingID, p.OrderID, p.PaymentURL, p.Amount, p.Currency, p.Status,
	))
	observe(ctx, "createPayment", start, err,
		zap.Int64("booking_id", p.BookingID),
		zap.String("order_id", p.OrderID),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("a payment already exists for this booking")
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return created, nil
}

// GetByBookingID fetches the checkout started for a booking
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*models.Payment, error) {
	start := time.Now()
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	p, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	observe(ctx, "getPaymentByBooking", start, err, zap.Int64("booking_id", bookingID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("payment")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.OrderID, &p.PaymentURL, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
