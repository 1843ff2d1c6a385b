package repository

import (
	"context"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserReader reads marketplace accounts
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// MentorProfileStore reads and writes mentor profiles
type MentorProfileStore interface {
	// Upsert updates the user's profile (nil fields untouched) or creates it.
	// created reports whether a new row was inserted.
	Upsert(ctx context.Context, w *models.MentorProfileWrite) (id int64, created bool, err error)

	// GetByUserID returns the profile joined with the account contact fields
	GetByUserID(ctx context.Context, userID int64) (*models.MentorProfile, error)

	// GetHourlyRate returns the mentor's rate, or nil when unset or no profile exists
	GetHourlyRate(ctx context.Context, userID int64) (*float64, error)
}

// SlotStore lists and creates availability slots
type SlotStore interface {
	List(ctx context.Context, filter models.SlotFilter) ([]*models.Slot, error)
	Create(ctx context.Context, mentorID int64, req *models.CreateSlotRequest) (*models.Slot, error)
}

// BookingStore reserves slots
type BookingStore interface {
	// CreateWithSlotLock reserves the slot and inserts the booking in one transaction
	CreateWithSlotLock(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
}

// PaymentStore records started checkouts
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*models.Payment, error)
}
