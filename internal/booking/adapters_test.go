package booking_test

import (
	"context"
	"testing"

	"github.com/coachhub/coachhub-api/internal/booking"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSlotService struct {
	filter models.SlotFilter
}

func (r *recordingSlotService) ListSlots(_ context.Context, filter models.SlotFilter) ([]*models.Slot, error) {
	r.filter = filter
	return []*models.Slot{{ID: 42, StartTime: "10:00:00"}}, nil
}

func (r *recordingSlotService) CreateSlot(context.Context, int64, *models.CreateSlotRequest) (*models.Slot, error) {
	return nil, nil
}

func TestServiceSlots_ListsOnlyOpenSlots(t *testing.T) {
	svc := &recordingSlotService{}
	slots, err := booking.NewServiceSlots(svc).ListOpenSlots(context.Background(), 7, "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	assert.Equal(t, int64(7), svc.filter.MentorID)
	assert.Equal(t, "2024-06-01", svc.filter.Date)
	require.NotNil(t, svc.filter.IsBooked)
	require.NotNil(t, svc.filter.IsActive)
	assert.False(t, *svc.filter.IsBooked)
	assert.True(t, *svc.filter.IsActive)
}
