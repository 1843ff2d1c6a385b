package handlers

import (
	"context"
	"net/http"

	"github.com/coachhub/coachhub-api/internal/booking"
	"github.com/coachhub/coachhub-api/internal/middleware"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/gin-gonic/gin"
)

// SessionBooker runs the book-session flow
type SessionBooker interface {
	BookSession(ctx context.Context, req booking.Request) (*booking.Outcome, error)
}

// SessionBookingHandler books a session by coach, date and time
type SessionBookingHandler struct {
	booker SessionBooker
}

// NewSessionBookingHandler creates a new SessionBookingHandler
func NewSessionBookingHandler(booker SessionBooker) *SessionBookingHandler {
	return &SessionBookingHandler{booker: booker}
}

// BookSession handles POST /api/v1/sessions/book
func (h *SessionBookingHandler) BookSession(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, booking.MsgLoginRequired, err)
		return
	}

	var req models.BookSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	sessionType, err := booking.ParseSessionType(req.SessionType)
	if err != nil {
		respondServiceError(c, err, "Invalid session type")
		return
	}

	out, err := h.booker.BookSession(c.Request.Context(), booking.Request{
		UserID:      session.UserID,
		MentorID:    req.MentorID,
		Date:        req.Date,
		Time:        req.Time,
		SessionType: sessionType,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, models.BookSessionResponse{
		BookingID:   out.BookingID,
		OrderID:     out.OrderID,
		Next:        string(out.Next),
		RedirectURL: out.RedirectURL,
		Message:     out.Message,
	})
}
