package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls   int
	profile *models.MentorProfile
	err     error
}

func (l *countingLoader) GetByUserID(_ context.Context, userID int64) (*models.MentorProfile, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	p := *l.profile
	p.UserID = userID
	return &p, nil
}

func TestProfileCache_ReadThrough(t *testing.T) {
	loader := &countingLoader{profile: &models.MentorProfile{ID: 1, Name: "Asha"}}
	pc := NewProfileCache(loader, 300)

	first, err := pc.Get(context.Background(), 7)
	require.NoError(t, err)
	second, err := pc.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1, loader.calls)
	assert.Same(t, first, second)
	assert.Equal(t, 1, pc.ItemCount())
}

func TestProfileCache_Invalidate(t *testing.T) {
	loader := &countingLoader{profile: &models.MentorProfile{ID: 1}}
	pc := NewProfileCache(loader, 300)

	_, err := pc.Get(context.Background(), 7)
	require.NoError(t, err)
	pc.Invalidate(7)
	_, err = pc.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 2, loader.calls)
}

func TestProfileCache_ErrorsAreNotCached(t *testing.T) {
	loader := &countingLoader{err: apperrors.NotFoundError("mentor profile")}
	pc := NewProfileCache(loader, 300)

	_, err := pc.Get(context.Background(), 9)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = pc.Get(context.Background(), 9)
	assert.Error(t, err)

	assert.Equal(t, 2, loader.calls)
	assert.Equal(t, 0, pc.ItemCount())
}

func TestProfileCache_ZeroTTLDisablesCaching(t *testing.T) {
	loader := &countingLoader{profile: &models.MentorProfile{ID: 1}}
	pc := NewProfileCache(loader, 0)

	_, _ = pc.Get(context.Background(), 7)
	_, _ = pc.Get(context.Background(), 7)

	assert.Equal(t, 2, loader.calls)
}
