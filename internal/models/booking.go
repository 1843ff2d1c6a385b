package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
)

// Booking reserves one slot of a mentor for one user
type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	MentorID  int64         `json:"mentor_id"`
	SlotID    int64         `json:"slot_id"`
	Notes     string        `json:"notes"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateBookingRequest is the payload for reserving a slot
type CreateBookingRequest struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0"`
	MentorID int64  `json:"mentor_id" binding:"required,gt=0"`
	SlotID   int64  `json:"slot_id" binding:"required,gt=0"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// PaymentInfo points the caller at a started checkout
type PaymentInfo struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

// CreateBookingResponse is returned after a booking is created.
// Payment is nil when no checkout was started.
type CreateBookingResponse struct {
	Booking *Booking     `json:"booking"`
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// BookingDetails is a booking together with the checkout started for it, if any
type BookingDetails struct {
	Booking *Booking     `json:"booking"`
	Payment *PaymentInfo `json:"payment,omitempty"`
}

// ScanBooking scans a row with columns:
// id, user_id, mentor_id, slot_id, notes, status, created_at
func ScanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var notes *string
	var status string

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.MentorID,
		&b.SlotID,
		&notes,
		&status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes != nil {
		b.Notes = *notes
	}
	b.Status = BookingStatus(status)

	return &b, nil
}
