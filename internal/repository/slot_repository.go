package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"go.uber.org/zap"
)

const slotColumns = `
	id, mentor_id, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'), is_booked, is_active`

// SlotRepository stores mentor availability in PostgreSQL
type SlotRepository struct {
	db DB
}

var _ SlotStore = (*SlotRepository)(nil)

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// List returns slots matching the filter ordered by date and start time
func (r *SlotRepository) List(ctx context.Context, filter models.SlotFilter) ([]*models.Slot, error) {
	start := time.Now()
	query, args := buildSlotListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		observe(ctx, "listSlots", start, err)
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	slots, err := models.ScanSlots(rows)
	observe(ctx, "listSlots", start, err,
		zap.Int64("mentor_id", filter.MentorID),
		zap.String("date", filter.Date),
		zap.Int("count", len(slots)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan slots: %w", err)
	}

	return slots, nil
}

// buildSlotListQuery renders the WHERE clause for the filter's set fields
func buildSlotListQuery(filter models.SlotFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.MentorID > 0 {
		add("mentor_id = $%d", filter.MentorID)
	}
	if filter.Date != "" {
		add("date = $%d::date", filter.Date)
	}
	if filter.IsBooked != nil {
		add("is_booked = $%d", *filter.IsBooked)
	}
	if filter.IsActive != nil {
		add("is_active = $%d", *filter.IsActive)
	}

	query := "SELECT" + slotColumns + " FROM slots"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, start_time"

	return query, args
}

// Create inserts a slot for the mentor
func (r *SlotRepository) Create(ctx context.Context, mentorID int64, req *models.CreateSlotRequest) (*models.Slot, error) {
	start := time.Now()
	query := `
		INSERT INTO slots (mentor_id, date, start_time, end_time)
		VALUES ($1, $2::date, $3::time, $4::time)
		RETURNING` + slotColumns

	slot, err := models.ScanSlot(r.db.QueryRow(ctx, query, mentorID, req.Date, req.StartTime, req.EndTime))
	observe(ctx, "createSlot", start, err,
		zap.Int64("mentor_id", mentorID),
		zap.String("date", req.Date),
		zap.String("start_time", req.StartTime),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ConflictError("a slot already exists at this date and time")
		}
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	return slot, nil
}
