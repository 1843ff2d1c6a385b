package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Role is a marketplace account role
type Role string

const (
	RoleUser   Role = "user"
	RoleMentor Role = "mentor"
	RoleAdmin  Role = "admin"
)

// User is a marketplace account. Accounts are created by the auth service.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsMentor reports whether the user may publish a profile and slots
func (u *User) IsMentor() bool {
	return u != nil && u.Role == RoleMentor
}

// ScanUser scans a row with columns: id, name, email, phone, role, created_at
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	var role string

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = Role(role)

	return &u, nil
}
