package models

import "time"

// Program is a training program catalog resource.
type Program struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	UserID      string // athlete the program is assigned to, may be empty
	Visibility  Visibility
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProgramRecord is an athlete's logged result for one program exercise.
// UserID is the subject; CreatedBy is whoever entered the record.
type ProgramRecord struct {
	ID        string
	ProgramID string
	UserID    string
	CreatedBy string
	Weight    float64
	Reps      int
	Sets      int
	LoggedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
