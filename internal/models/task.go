package models

import "time"

// Task is a personal to-do item assigned to an athlete by its author.
type Task struct {
	ID        string
	UserID    string
	CreatedBy string
	Title     string
	Done      bool
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
