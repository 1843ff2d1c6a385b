package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func slotRouter(svc *MockSlotService) *gin.Engine {
	h := NewSlotHandler(svc)
	router := gin.New()
	router.GET("/api/v1/slots", h.ListSlots)
	router.GET("/api/v1/mentor/slots/mentor/:mentorId", h.ListMentorSlots)
	router.POST("/api/v1/mentor/slots", withSession(7, models.RoleMentor), h.CreateSlot)
	return router
}

func openFilter(mentorID int64) models.SlotFilter {
	booked, active := false, true
	return models.SlotFilter{MentorID: mentorID, Date: "2024-06-01", IsBooked: &booked, IsActive: &active}
}

func TestListSlots_QueryForm(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)

	svc.On("ListSlots", mock.Anything, openFilter(7)).
		Return([]*models.Slot{{ID: 42, MentorID: 7, Date: "2024-06-01", StartTime: "10:00:00", IsActive: true}}, nil).Once()

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/slots?mentor_id=7&date=2024-06-01&is_booked=0&is_active=1", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":42,"mentor_id":7,"date":"2024-06-01","start_time":"10:00:00","end_time":null,"is_booked":false,"is_active":true}]`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestListSlots_PathForm(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)

	svc.On("ListSlots", mock.Anything, openFilter(7)).Return(nil, nil).Once()

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/mentor/slots/mentor/7?date=2024-06-01&is_booked=false&is_active=true", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListSlots_BadParams(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/slots?is_booked=maybe", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/mentor/slots/mentor/x", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "ListSlots", mock.Anything, mock.Anything)
}

func TestListSlots_ServiceFailure(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)
	svc.On("ListSlots", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/slots?mentor_id=7", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch available slots", errorMessage(t, w))
}

func TestCreateSlot(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)

	svc.On("CreateSlot", mock.Anything, int64(7), &models.CreateSlotRequest{Date: "2024-06-01", StartTime: "10:00"}).
		Return(&models.Slot{ID: 42, MentorID: 7, Date: "2024-06-01", StartTime: "10:00:00", IsActive: true}, nil).Once()

	w := serve(router, jsonRequest(t, http.MethodPost, "/api/v1/mentor/slots", map[string]string{"date": "2024-06-01", "start_time": "10:00"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateSlot_Errors(t *testing.T) {
	svc := new(MockSlotService)
	router := slotRouter(svc)

	w := serve(router, jsonRequest(t, http.MethodPost, "/api/v1/mentor/slots", map[string]string{"date": "June 1", "start_time": "10:00"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Date must match YYYY-MM-DD", errorMessage(t, w))

	svc.On("CreateSlot", mock.Anything, int64(7), mock.Anything).Return(nil, apperrors.AccessDeniedError("Only mentors can publish slots"))
	w = serve(router, jsonRequest(t, http.MethodPost, "/api/v1/mentor/slots", map[string]string{"date": "2024-06-01", "start_time": "10:00"}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only mentors can publish slots", errorMessage(t, w))
}
