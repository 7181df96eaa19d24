// Package entity holds the user module domain types.
package entity

import "time"

type User struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	PushToken   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateUser struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	PushToken   string
}

// Preferences controls which channels a user accepts notifications on.
// New users start with every channel enabled.
type Preferences struct {
	UserID     string
	AllowEmail bool
	AllowSMS   bool
	AllowPush  bool
	UpdatedAt  time.Time
}
