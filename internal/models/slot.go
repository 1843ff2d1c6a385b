package models

import (
	"github.com/jackc/pgx/v5"
)

// Slot is a time a mentor has published as bookable.
// Date is rendered YYYY-MM-DD and times HH:MM:SS.
type Slot struct {
	ID        int64   `json:"id"`
	MentorID  int64   `json:"mentor_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsBooked  bool    `json:"is_booked"`
	IsActive  bool    `json:"is_active"`
}

// SlotFilter narrows a slot listing. Zero/nil fields are not applied.
type SlotFilter struct {
	MentorID int64
	Date     string
	IsBooked *bool
	IsActive *bool
}

// CreateSlotRequest is the payload a mentor sends to publish a slot
type CreateSlotRequest struct {
	Date      string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   *string `json:"end_time"`
}

// ScanSlot scans a row with columns:
// id, mentor_id, date, start_time, end_time, is_booked, is_active
func ScanSlot(row pgx.Row) (*Slot, error) {
	var s Slot

	err := row.Scan(
		&s.ID,
		&s.MentorID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
		&s.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// ScanSlots scans all rows and closes them
func ScanSlots(rows pgx.Rows) ([]*Slot, error) {
	defer rows.Close()

	slots := []*Slot{}
	for rows.Next() {
		slot, err := ScanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
