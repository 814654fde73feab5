package models

import "time"

// User represents a member who can log in, verify backup stages, or be
// recorded as a producer on a backup item. Accounts are provisioned by a
// seed/admin process; there is no registration endpoint.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:10;not null"`
	Nickname string `json:"nickname" gorm:"size:200;not null"`
	// Password is stored as an opaque string and compared verbatim at login.
	// It is never serialized in API responses.
	Password  string    `json:"-" gorm:"size:500;not null"`
	Deleted   bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// IsActive reports whether the user has not been soft-deleted.
func (u *User) IsActive() bool {
	return !u.Deleted
}
