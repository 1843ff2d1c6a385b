package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookingColumns = `id, user_id, mentor_id, slot_id, notes, status, created_at`

// slotUnavailableReason is the message shown when a slot was taken or withdrawn
const slotUnavailableReason = "Selected slot is no longer available. Please choose another time."

// BookingRepository stores bookings in PostgreSQL
type BookingRepository struct {
	db DB
}

var _ BookingStore = (*BookingRepository)(nil)

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithSlotLock locks the slot row, checks it is open and owned by the mentor,
// inserts the booking and marks the slot booked. All or nothing.
func (r *BookingRepository) CreateWithSlotLock(ctx context.Context, req *models.CreateBookingRequest) (booking *models.Booking, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, "createBooking", start, err,
			zap.Int64("user_id", req.UserID),
			zap.Int64("mentor_id", req.MentorID),
			zap.Int64("slot_id", req.SlotID),
		)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back booking transaction", zap.Error(rbErr))
		}
	}()

	var mentorID int64
	var isBooked, isActive bool
	err = tx.QueryRow(ctx,
		`SELECT mentor_id, is_booked, is_active FROM slots WHERE id = $1 FOR UPDATE`,
		req.SlotID,
	).Scan(&mentorID, &isBooked, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.SlotUnavailableError(slotUnavailableReason)
		}
		return nil, fmt.Errorf("failed to lock slot: %w", err)
	}

	if mentorID != req.MentorID || isBooked || !isActive {
		return nil, apperrors.SlotUnavailableError(slotUnavailableReason)
	}

	booking, err = models.ScanBooking(tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, mentor_id, slot_id, notes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+bookingColumns,
		req.UserID, req.MentorID, req.SlotID, req.Notes, string(models.BookingStatusPendingPayment),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.SlotUnavailableError(slotUnavailableReason)
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE slots SET is_booked = TRUE, updated_at = NOW() WHERE id = $1`,
		req.SlotID,
	); err != nil {
		return nil, fmt.Errorf("failed to mark slot booked: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.SlotUnavailableError(slotUnavailableReason)
		}
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return booking, nil
}

// GetByID fetches a booking
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	start := time.Now()
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := models.ScanBooking(r.db.QueryRow(ctx, query, id))
	observe(ctx, "getBooking", start, err, zap.Int64("booking_id", id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("booking")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}
