package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const mentorProfileColumns = `
	mp.id, mp.user_id, mp.username, mp.category, mp.bio, mp.skills, mp.other_skills,
	mp.resume, mp.hourly_rate::float8, mp.created_at, mp.updated_at,
	u.name, u.email, u.phone`

// MentorProfileRepository stores mentor profiles in PostgreSQL
type MentorProfileRepository struct {
	db DB
}

var _ MentorProfileStore = (*MentorProfileRepository)(nil)

// NewMentorProfileRepository creates a new mentor profile repository
func NewMentorProfileRepository(db DB) *MentorProfileRepository {
	return &MentorProfileRepository{db: db}
}

// Upsert updates an existing profile or inserts a new one.
// A concurrent first write that loses the insert race falls back to update.
func (r *MentorProfileRepository) Upsert(ctx context.Context, w *models.MentorProfileWrite) (int64, bool, error) {
	id, err := r.update(ctx, w)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	id, err = r.insert(ctx, w)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	id, err = r.update(ctx, w)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert mentor profile: %w", err)
	}
	return id, false, nil
}

func (r *MentorProfileRepository) update(ctx context.Context, w *models.MentorProfileWrite) (int64, error) {
	start := time.Now()
	query := `
		UPDATE mentor_profiles
		SET username     = COALESCE($2, username),
		    category     = COALESCE($3, category),
		    bio          = COALESCE($4, bio),
		    skills       = COALESCE($5, skills),
		    other_skills = COALESCE($6, other_skills),
		    resume       = COALESCE($7, resume),
		    hourly_rate  = COALESCE($8, hourly_rate),
		    updated_at   = NOW()
		WHERE user_id = $1
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		w.UserID, w.Username, w.Category, w.Bio, w.Skills, w.OtherSkills, w.Resume, w.HourlyRate,
	).Scan(&id)
	observe(ctx, "updateMentorProfile", start, err, zap.Int64("user_id", w.UserID))

	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to update mentor profile: %w", err)
	}
	return id, err
}

func (r *MentorProfileRepository) insert(ctx context.Context, w *models.MentorProfileWrite) (int64, error) {
	start := time.Now()
	query := `
		INSERT INTO mentor_profiles
			(user_id, username, category, bio, skills, other_skills, resume, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		w.UserID, w.Username, w.Category, w.Bio, w.Skills, w.OtherSkills, w.Resume, w.HourlyRate,
	).Scan(&id)
	observe(ctx, "insertMentorProfile", start, err, zap.Int64("user_id", w.UserID))

	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		if isForeignKeyViolation(err) {
			return 0, apperrors.NotFoundError("user")
		}
		return 0, fmt.Errorf("failed to insert mentor profile: %w", err)
	}
	return id, err
}

// GetByUserID fetches the merged profile record for a user
func (r *MentorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.MentorProfile, error) {
	start := time.Now()
	query := `SELECT ` + mentorProfileColumns + `
		FROM mentor_profiles mp
		JOIN users u ON u.id = mp.user_id
		WHERE mp.user_id = $1`

	profile, err := models.ScanMentorProfile(r.db.QueryRow(ctx, query, userID))
	observe(ctx, "getMentorProfile", start, err, zap.Int64("user_id", userID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("mentor profile")
		}
		return nil, fmt.Errorf("failed to get mentor profile: %w", err)
	}

	return profile, nil
}

// GetHourlyRate fetches the mentor's hourly rate
func (r *MentorProfileRepository) GetHourlyRate(ctx context.Context, userID int64) (*float64, error) {
	start := time.Now()
	query := `SELECT hourly_rate::float8 FROM mentor_profiles WHERE user_id = $1`

	var rate *float64
	err := r.db.QueryRow(ctx, query, userID).Scan(&rate)
	observe(ctx, "getMentorHourlyRate", start, err, zap.Int64("user_id", userID))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hourly rate: %w", err)
	}

	return rate, nil
}
