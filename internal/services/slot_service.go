package services

import (
	"context"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/repository"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// accepted start/end time layouts; stored as TIME
var timeLayouts = []string{"15:04", "15:04:05"}

// SlotService lists and publishes mentor availability
type SlotService struct {
	slots repository.SlotStore
	users repository.UserReader
}

var _ SlotServiceInterface = (*SlotService)(nil)

// NewSlotService creates a new slot service
func NewSlotService(slots repository.SlotStore, users repository.UserReader) *SlotService {
	return &SlotService{slots: slots, users: users}
}

// ListSlots returns slots matching the filter ordered by start time
func (s *SlotService) ListSlots(ctx context.Context, filter models.SlotFilter) ([]*models.Slot, error) {
	if filter.Date != "" {
		if _, err := time.Parse(dateLayout, filter.Date); err != nil {
			return nil, apperrors.InvalidInputError("date", "must be YYYY-MM-DD")
		}
	}
	return s.slots.List(ctx, filter)
}

// CreateSlot publishes a new slot for the calling mentor
func (s *SlotService) CreateSlot(ctx context.Context, mentorUserID int64, req *models.CreateSlotRequest) (*models.Slot, error) {
	user, err := s.users.GetByID(ctx, mentorUserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if !user.IsMentor() {
		return nil, apperrors.AccessDeniedError("Only mentors can publish slots")
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, apperrors.InvalidInputError("date", "must be YYYY-MM-DD")
	}
	startAt, ok := parseClock(req.StartTime)
	if !ok {
		return nil, apperrors.InvalidInputError("start_time", "must be HH:MM or HH:MM:SS")
	}
	if req.EndTime != nil && *req.EndTime != "" {
		endAt, ok := parseClock(*req.EndTime)
		if !ok {
			return nil, apperrors.InvalidInputError("end_time", "must be HH:MM or HH:MM:SS")
		}
		if !endAt.After(startAt) {
			return nil, apperrors.InvalidInputError("end_time", "must be after start_time")
		}
	} else {
		req.EndTime = nil
	}

	slot, err := s.slots.Create(ctx, mentorUserID, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Slot published",
		zap.Int64("mentor_id", mentorUserID),
		zap.Int64("slot_id", slot.ID),
		zap.String("date", slot.Date),
		zap.String("start_time", slot.StartTime))

	return slot, nil
}

func parseClock(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
