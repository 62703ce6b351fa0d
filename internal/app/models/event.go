package models

import "time"

// Event represents a training event organized by an administrator
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"event_date"`           // calendar date of the event
	StartTime   string    `json:"time" db:"start_time"`           // HH:MM, 24-hour clock
	Venue       string    `json:"venue" db:"venue"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
