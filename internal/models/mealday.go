package models

import "time"

// MealDay is one day's meal template. OwnerID is the coach whose library the
// day lives in; CreatedBy is the authoring identity (an admin may author days
// into a coach's library, so the two can differ).
type MealDay struct {
	ID         string
	Name       string
	OwnerID    string
	CreatedBy  string
	Visibility Visibility
	Date       *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
