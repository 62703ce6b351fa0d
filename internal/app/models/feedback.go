package models

import "time"

// Feedback is a post-event feedback record from an attended nominee.
// At most one record exists per nominee; resubmission updates it in place.
type Feedback struct {
	ID          int64     `json:"id" db:"id"`
	NomineeID   int64     `json:"nomineeId" db:"nominee_id"`
	Rating      int       `json:"rating" db:"rating"` // 1..5 inclusive
	Comments    string    `json:"comments" db:"comments"`
	Suggestions string    `json:"suggestions" db:"suggestions"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}
