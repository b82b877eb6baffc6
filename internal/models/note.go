package models

import "time"

// Note is a personal resource scoped purely by ownership: no visibility flag.
// UserID is the athlete the note is about, CreatedBy its author.
type Note struct {
	ID        string
	UserID    string
	CreatedBy string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
