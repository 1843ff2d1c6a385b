package pending

import (
	"context"
	"testing"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 5, models.PendingBooking{BookingID: 101, OrderID: "cs_1"}))

	got, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(101), got.BookingID)
	assert.Equal(t, "cs_1", got.OrderID)

	require.NoError(t, store.Delete(ctx, 5))
	_, err = store.Get(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 5, models.PendingBooking{BookingID: 1, OrderID: "a"}))
	require.NoError(t, store.Save(ctx, 5, models.PendingBooking{BookingID: 2, OrderID: "b"}))

	got, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.BookingID)
}

func TestMemoryStore_MarkersArePerUser(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 5, models.PendingBooking{BookingID: 1}))

	_, err := store.Get(ctx, 6)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryStore_Expires(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 5, models.PendingBooking{BookingID: 1}))
	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "pendingBooking:42", key(42))
	assert.Equal(t, DefaultTTL, ttlOrDefault(0))
}
