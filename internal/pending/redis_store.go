package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/go-redis/redis/v8"
)

// RedisStore keeps markers in Redis so they survive restarts and are shared across replicas
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on an existing client
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttlOrDefault(ttl)}
}

// NewRedisClient builds a client from a redis:// URL
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Save stores the marker, replacing any previous one
func (s *RedisStore) Save(ctx context.Context, userID int64, marker models.PendingBooking) error {
	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to marshal pending booking: %w", err)
	}

	err = s.client.Set(ctx, key(userID), data, s.ttl).Err()
	record("save", err)
	if err != nil {
		return fmt.Errorf("failed to save pending booking: %w", err)
	}
	return nil
}

// Get reads the marker back
func (s *RedisStore) Get(ctx context.Context, userID int64) (*models.PendingBooking, error) {
	data, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		record("get", nil)
		return nil, apperrors.NotFoundError("pending booking")
	}
	record("get", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending booking: %w", err)
	}

	var marker models.PendingBooking
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending booking: %w", err)
	}
	return &marker, nil
}

// Delete removes the marker; deleting a missing marker is not an error
func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	err := s.client.Del(ctx, key(userID)).Err()
	record("delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete pending booking: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connections
func (s *RedisStore) Close() error {
	return s.client.Close()
}
