package models

import "time"

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Active is a soft switch; users are never hard-deleted.
	Active bool `gorm:"not null" json:"active"`

	// Lockout state. FailedAttempts accumulates until the configured
	// maximum, at which point LockedUntil is set and the counter goes
	// back to zero. Concurrent logins may race on the counter; last
	// write wins, the lock itself is the defense.
	FailedAttempts int        `gorm:"not null" json:"-"`
	LockedUntil    *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}
