package models

// PendingBooking remembers a booking whose payment was handed off to the provider
type PendingBooking struct {
	BookingID int64  `json:"bookingId"`
	OrderID   string `json:"orderId"`
}

// BookSessionRequest is the payload for booking a session by date and time
type BookSessionRequest struct {
	MentorID    int64  `json:"mentor_id" binding:"required,gt=0"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        string `json:"time" binding:"omitempty,datetime=15:04"`
	SessionType string `json:"session_type" binding:"omitempty,oneof=quick standard extended"`
}

// BookSessionResponse tells the caller where to go next
type BookSessionResponse struct {
	BookingID   int64  `json:"booking_id"`
	OrderID     string `json:"order_id,omitempty"`
	Next        string `json:"next"`
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}
