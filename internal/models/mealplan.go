package models

import "time"

// MealPlan is a catalog resource: authored by a coach or admin, optionally
// assigned to an athlete via UserID.
type MealPlan struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	UserID      string // athlete the plan is assigned to, may be empty
	Visibility  Visibility
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
