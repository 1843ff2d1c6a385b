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

// UserRepository reads accounts owned by the auth service
type UserRepository struct {
	db DB
}

var _ UserReader = (*UserRepository)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID fetches a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()
	query := `SELECT id, name, email, phone, role, created_at FROM users WHERE id = $1`

	user, err := models.ScanUser(r.db.QueryRow(ctx, query, id))
	observe(ctx, "getUserByID", start, err, zap.Int64("user_id", id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, nil
}
