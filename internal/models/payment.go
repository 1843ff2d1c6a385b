package models

import "time"

// PaymentStatusPending marks a checkout that has been started but not settled
const PaymentStatusPending = "pending"

// Payment records a checkout started for a booking
type Payment struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	OrderID    string    `json:"order_id"`
	PaymentURL string    `json:"payment_url"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
