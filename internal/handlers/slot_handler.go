package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachhub/coachhub-api/internal/middleware"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/services"
	"github.com/gin-gonic/gin"
)

// SlotHandler serves mentor availability
type SlotHandler struct {
	slots services.SlotServiceInterface
}

// NewSlotHandler creates a new SlotHandler
func NewSlotHandler(slots services.SlotServiceInterface) *SlotHandler {
	return &SlotHandler{slots: slots}
}

// ListSlots handles GET /api/v1/slots?mentor_id=&date=&is_booked=&is_active=
func (h *SlotHandler) ListSlots(c *gin.Context) {
	var mentorID int64
	if v := c.Query("mentor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "mentor_id is invalid", err)
			return
		}
		mentorID = id
	}
	h.list(c, mentorID)
}

// ListMentorSlots handles GET /api/v1/mentor/slots/mentor/:mentorId
func (h *SlotHandler) ListMentorSlots(c *gin.Context) {
	mentorID, err := strconv.ParseInt(c.Param("mentorId"), 10, 64)
	if err != nil || mentorID <= 0 {
		respondError(c, http.StatusBadRequest, "mentorId is invalid", err)
		return
	}
	h.list(c, mentorID)
}

func (h *SlotHandler) list(c *gin.Context, mentorID int64) {
	filter := models.SlotFilter{MentorID: mentorID, Date: c.Query("date")}

	var ok bool
	if filter.IsBooked, ok = queryBool(c, "is_booked"); !ok {
		respondError(c, http.StatusBadRequest, "is_booked must be 0 or 1", nil)
		return
	}
	if filter.IsActive, ok = queryBool(c, "is_active"); !ok {
		respondError(c, http.StatusBadRequest, "is_active must be 0 or 1", nil)
		return
	}

	slots, err := h.slots.ListSlots(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch available slots")
		return
	}
	if slots == nil {
		slots = []*models.Slot{}
	}

	c.JSON(http.StatusOK, slots)
}

// CreateSlot handles POST /api/v1/mentor/slots
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Please login first", err)
		return
	}

	var req models.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}

	slot, err := h.slots.CreateSlot(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create slot")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// queryBool reads an optional 0/1/true/false query parameter
func queryBool(c *gin.Context, key string) (*bool, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, false
	}
	return &b, true
}
