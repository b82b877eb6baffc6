package models

import "time"

// DailyReport is an athlete's self-reported daily entry.
type DailyReport struct {
	ID        string
	UserID    string // the athlete the report is about
	CreatedBy string
	Date      time.Time
	Weight    *float64
	Sleep     *float64
	Mood      *int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KPISummary aggregates an athlete's daily reports over a date range.
type KPISummary struct {
	AthleteID   string
	From        time.Time
	To          time.Time
	ReportCount int
	AvgWeight   *float64
	AvgSleep    *float64
	AvgMood     *float64
}
