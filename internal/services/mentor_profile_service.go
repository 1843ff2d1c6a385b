package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/coachhub/coachhub-api/config"
	"github.com/coachhub/coachhub-api/internal/models"
	"github.com/coachhub/coachhub-api/internal/repository"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/coachhub/coachhub-api/pkg/slug"
	"github.com/coachhub/coachhub-api/pkg/storage"
	"github.com/coachhub/coachhub-api/pkg/tracing"
	"github.com/coachhub/coachhub-api/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProfileCache is the read-through cache in front of profile reads
type ProfileCache interface {
	Get(ctx context.Context, userID int64) (*models.MentorProfile, error)
	Invalidate(userID int64)
}

// MentorProfileService creates, updates and reads mentor profiles
type MentorProfileService struct {
	users      repository.UserReader
	profiles   repository.MentorProfileStore
	cache      ProfileCache
	uploader   storage.Uploader
	httpClient httpclient.Client
	config     *config.Config
}

var _ MentorProfileServiceInterface = (*MentorProfileService)(nil)

// NewMentorProfileService creates a profile service. uploader may be nil when
// object storage is not configured; resume uploads are then rejected.
func NewMentorProfileService(
	users repository.UserReader,
	profiles repository.MentorProfileStore,
	cache ProfileCache,
	uploader storage.Uploader,
	httpClient httpclient.Client,
	cfg *config.Config,
) *MentorProfileService {
	return &MentorProfileService{
		users:      users,
		profiles:   profiles,
		cache:      cache,
		uploader:   uploader,
		httpClient: httpClient,
		config:     cfg,
	}
}

// CreateOrUpdateMentorProfile writes the supplied fields of a mentor's profile.
// The bool result reports whether a new profile was created.
func (s *MentorProfileService) CreateOrUpdateMentorProfile(ctx context.Context, req *models.MentorProfileRequest, resume *models.ResumeFile) (resp *models.MentorProfileResponse, created bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "MentorProfileService.CreateOrUpdateMentorProfile",
		attribute.Int64("user_id", req.UserID))
	defer func() { tracing.EndSpan(span, err) }()

	if req.UserID <= 0 {
		return nil, false, apperrors.InvalidInputError("user_id", "is required")
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		metrics.ProfileWrites.WithLabelValues("error").Inc()
		return nil, false, err
	}
	if !user.IsMentor() {
		metrics.ProfileWrites.WithLabelValues("forbidden").Inc()
		logger.Warn("Profile write rejected: user is not a mentor", zap.Int64("user_id", req.UserID))
		return nil, false, apperrors.AccessDeniedError("User is not a mentor")
	}

	write := &models.MentorProfileWrite{
		UserID:      req.UserID,
		Username:    nonEmpty(req.Username),
		Category:    nonEmpty(req.Category),
		Bio:         nonEmpty(req.Bio),
		Skills:      req.Skills.Value(),
		OtherSkills: req.OtherSkills.Value(),
		HourlyRate:  req.HourlyRate,
	}

	if resume != nil {
		key, uploadErr := s.uploadResume(ctx, req.UserID, resume)
		if uploadErr != nil {
			metrics.ProfileWrites.WithLabelValues("error").Inc()
			return nil, false, uploadErr
		}
		write.Resume = &key
	}

	id, created, err := s.profiles.Upsert(ctx, write)
	if err != nil {
		metrics.ProfileWrites.WithLabelValues("error").Inc()
		logger.Error("Failed to write mentor profile", zap.Error(err), zap.Int64("user_id", req.UserID))
		return nil, false, err
	}

	s.cache.Invalidate(req.UserID)
	trigger.CallAsync(s.config.EventTriggers.ProfileUpdatedTriggerURL, strconv.FormatInt(req.UserID, 10), s.httpClient, nil)

	message := "Mentor profile updated!"
	result := "updated"
	if created {
		message = "Mentor profile created!"
		result = "created"
	}
	metrics.ProfileWrites.WithLabelValues(result).Inc()
	logger.Info("Mentor profile saved",
		zap.Int64("user_id", req.UserID),
		zap.Int64("profile_id", id),
		zap.Bool("created", created))

	return &models.MentorProfileResponse{Message: message, ID: id}, created, nil
}

func (s *MentorProfileService) uploadResume(ctx context.Context, userID int64, resume *models.ResumeFile) (string, error) {
	if s.uploader == nil {
		return "", apperrors.InvalidInputError("resume", "uploads are not enabled")
	}
	if err := storage.ValidateResume(resume.ContentType, int64(len(resume.Data))); err != nil {
		return "", apperrors.InvalidInputError("resume", err.Error())
	}

	key := storage.ResumeKey(userID, slug.FileStem(resume.FileName), resume.ContentType)
	if _, err := s.uploader.Upload(ctx, key, resume.ContentType, resume.Data); err != nil {
		metrics.ResumeUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to upload resume", zap.Error(err), zap.Int64("user_id", userID))
		return "", apperrors.TransportError("upload resume", err)
	}

	metrics.ResumeUploads.WithLabelValues("success").Inc()
	return key, nil
}

// GetMentorProfile returns the merged profile record for a user
func (s *MentorProfileService) GetMentorProfile(ctx context.Context, userID int64) (*models.MentorProfile, error) {
	if userID <= 0 {
		return nil, apperrors.InvalidInputError("user_id", "must be a positive integer")
	}

	profile, err := s.cache.Get(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundError("mentor profile")
		}
		return nil, fmt.Errorf("failed to get mentor profile: %w", err)
	}

	return profile, nil
}

// nonEmpty treats empty strings as not supplied: an empty username, category
// or bio leaves the stored value in place rather than blanking it
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
