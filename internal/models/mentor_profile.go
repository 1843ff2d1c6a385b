package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
)

// SerializedText is a free-form JSON field stored as text.
// A JSON string is kept verbatim; any other JSON value is kept as its compact encoding.
type SerializedText string

// UnmarshalJSON implements json.Unmarshaler
func (s *SerializedText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = SerializedText(str)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return err
	}
	*s = SerializedText(buf.String())
	return nil
}

// Value returns the stored text, or nil when empty or absent
func (s *SerializedText) Value() *string {
	if s == nil || *s == "" || *s == "null" {
		return nil
	}
	v := string(*s)
	return &v
}

// MentorProfile is a mentor's public profile merged with their account contact fields
type MentorProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Username    *string   `json:"username"`
	Category    *string   `json:"category"`
	Bio         *string   `json:"bio"`
	Skills      *string   `json:"skills"`
	OtherSkills *string   `json:"other_skills"`
	Resume      *string   `json:"resume"`
	HourlyRate  *float64  `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// MentorProfileRequest is the write payload for a mentor profile.
// Absent or empty fields leave the stored value unchanged.
type MentorProfileRequest struct {
	UserID      int64           `json:"user_id"`
	Username    *string         `json:"username" binding:"omitempty,max=100"`
	Category    *string         `json:"category" binding:"omitempty,max=100"`
	Bio         *string         `json:"bio" binding:"omitempty,max=5000"`
	Skills      *SerializedText `json:"skills"`
	OtherSkills *SerializedText `json:"other_skills"`
	HourlyRate  *float64        `json:"hourly_rate" binding:"omitempty,gte=0"`
}

// ResumeFile is an uploaded resume attached to a profile write
type ResumeFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MentorProfileWrite is the column set written to mentor_profiles.
// Nil fields are left as they are on update.
type MentorProfileWrite struct {
	UserID      int64
	Username    *string
	Category    *string
	Bio         *string
	Skills      *string
	OtherSkills *string
	Resume      *string
	HourlyRate  *float64
}

// MentorProfileResponse is returned after a profile write
type MentorProfileResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ScanMentorProfile scans a row with columns:
// id, user_id, username, category, bio, skills, other_skills, resume, hourly_rate,
// created_at, updated_at, name, email, phone
func ScanMentorProfile(row pgx.Row) (*MentorProfile, error) {
	var p MentorProfile

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Username,
		&p.Category,
		&p.Bio,
		&p.Skills,
		&p.OtherSkills,
		&p.Resume,
		&p.HourlyRate,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Name,
		&p.Email,
		&p.Phone,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
