package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	profileKeyPrefix = "mentor_profile:user:"
	profileCacheName = "mentor_profile"
	cleanupInterval  = time.Minute
)

// ProfileLoader fetches a profile from the backing store
type ProfileLoader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MentorProfile, error)
}

// ProfileCache is a read-through cache of merged mentor profiles keyed by user id.
// Errors from the loader are never cached.
type ProfileCache struct {
	cache  *gocache.Cache
	loader ProfileLoader
	ttl    time.Duration
}

// NewProfileCache creates a profile cache; ttlSeconds <= 0 disables caching
func NewProfileCache(loader ProfileLoader, ttlSeconds int) *ProfileCache {
	ttl := time.Duration(ttlSeconds) * time.Second

	return &ProfileCache{
		cache:  gocache.New(ttl, cleanupInterval),
		loader: loader,
		ttl:    ttl,
	}
}

// Get returns the cached profile or loads and caches it
func (pc *ProfileCache) Get(ctx context.Context, userID int64) (*models.MentorProfile, error) {
	key := profileKey(userID)

	if data, found := pc.cache.Get(key); found {
		if profile, ok := data.(*models.MentorProfile); ok {
			metrics.CacheHits.WithLabelValues(profileCacheName).Inc()
			return profile, nil
		}
	}
	metrics.CacheMisses.WithLabelValues(profileCacheName).Inc()

	profile, err := pc.loader.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if pc.ttl > 0 {
		pc.cache.Set(key, profile, pc.ttl)
	}

	return profile, nil
}

// Invalidate drops the cached profile for a user
func (pc *ProfileCache) Invalidate(userID int64) {
	pc.cache.Delete(profileKey(userID))
	logger.Debug("Mentor profile cache invalidated", zap.Int64("user_id", userID))
}

// ItemCount returns the number of cached profiles
func (pc *ProfileCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func profileKey(userID int64) string {
	return profileKeyPrefix + strconv.FormatInt(userID, 10)
}
