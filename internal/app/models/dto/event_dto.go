package dto

import "time"

// EventCreateRequest represents event creation data. Date is YYYY-MM-DD,
// Time is HH:MM (24-hour).
type EventCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Venue       string `json:"venue" binding:"required"`
}

// EventUpdateRequest represents a partial event update; nil fields are left
// unchanged.
type EventUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Venue       *string `json:"venue"`
}

// EventResponse is the list projection of an event: derived per-status counts,
// no nominee collection.
type EventResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Venue         string    `json:"venue"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalNominees int       `json:"totalNominees"`
	PendingCount  int       `json:"pendingCount"`
	AcceptedCount int       `json:"acceptedCount"`
	RejectedCount int       `json:"rejectedCount"`
	AttendedCount int       `json:"attendedCount"`
}

// EventDetailResponse is the detail projection: counts plus the full nominee
// collection with any embedded feedback.
type EventDetailResponse struct {
	EventResponse
	Nominees []NomineeResponse `json:"nominees"`
}
