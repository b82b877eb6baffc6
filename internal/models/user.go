package models

import "time"

// User is a directory entry. Type mirrors the role the account was created
// with ("admin", "coach", "athlete") and is what the admin-identity scan
// filters on.
type User struct {
	ID           string
	Email        string
	Name         string
	Type         string
	PasswordHash string
	Status       string // "active", "suspended", "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AthleteInfo is the athlete-profile record attached to a directory entry.
// UserID is the subject; CreatedBy is the coach or admin who authored it.
type AthleteInfo struct {
	ID        string
	UserID    string
	CreatedBy string
	Height    *float64
	Weight    *float64
	Notes     string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
