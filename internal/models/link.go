package models

import "time"

// CoachAthleteLink is a time-bounded delegation grant: while active and inside
// its date window, the coach may view the athlete's personal data.
type CoachAthleteLink struct {
	ID        string
	CoachID   string
	AthleteID string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrentlyValid reports whether the link grants access at the given
// instant. Validity is recomputed on every check, never cached: is_active must
// be set, startDate (if present) must not be in the future and endDate (if
// present) must not have passed.
func (l *CoachAthleteLink) IsCurrentlyValid(now time.Time) bool {
	if !l.IsActive {
		return false
	}
	if l.StartDate != nil && now.Before(*l.StartDate) {
		return false
	}
	if l.EndDate != nil && now.After(*l.EndDate) {
		return false
	}
	return true
}
