package pending

import (
	"context"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps markers in process memory. Used when Redis is not configured.
type MemoryStore struct {
	cache *gocache.Cache
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-process store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttlOrDefault(ttl), 10*time.Minute)}
}

// Save stores the marker, replacing any previous one
func (s *MemoryStore) Save(_ context.Context, userID int64, marker models.PendingBooking) error {
	s.cache.SetDefault(key(userID), marker)
	record("save", nil)
	return nil
}

// Get reads the marker back
func (s *MemoryStore) Get(_ context.Context, userID int64) (*models.PendingBooking, error) {
	record("get", nil)
	data, found := s.cache.Get(key(userID))
	if !found {
		return nil, apperrors.NotFoundError("pending booking")
	}
	marker := data.(models.PendingBooking)
	return &marker, nil
}

// Delete removes the marker
func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(key(userID))
	record("delete", nil)
	return nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
