package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachhub/coachhub-api/internal/middleware"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/services"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves bookings and pending-booking markers
type BookingHandler struct {
	bookings services.BookingServiceInterface
	pending  services.PendingBookingServiceInterface
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings services.BookingServiceInterface, pending services.PendingBookingServiceInterface) *BookingHandler {
	return &BookingHandler{bookings: bookings, pending: pending}
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	var req models.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}
	if req.UserID != session.UserID {
		respondError(c, http.StatusForbidden, "You can only book for yourself", nil)
		return
	}

	resp, err := h.bookings.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid booking id", err)
		return
	}

	details, err := h.bookings.GetBooking(c.Request.Context(), session.UserID, id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch booking")
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetPendingBooking handles GET /api/v1/bookings/pending
func (h *BookingHandler) GetPendingBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	marker, err := h.pending.GetPendingBooking(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to read pending booking")
		return
	}

	c.JSON(http.StatusOK, marker)
}

// ClearPendingBooking handles DELETE /api/v1/bookings/pending
func (h *BookingHandler) ClearPendingBooking(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	if err := h.pending.ClearPendingBooking(c.Request.Context(), session.UserID); err != nil {
		respondServiceError(c, err, "Failed to clear pending booking")
		return
	}

	c.Status(http.StatusNoContent)
}
