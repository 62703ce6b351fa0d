package dto

import "time"

// FeedbackSubmitRequest represents a feedback submission from the public form
type FeedbackSubmitRequest struct {
	Rating      int    `json:"rating" binding:"required"`
	Comments    string `json:"comments"`
	Suggestions string `json:"suggestions"`
}

// FeedbackResponse represents one feedback record
type FeedbackResponse struct {
	ID          int64     `json:"id"`
	NomineeID   int64     `json:"nomineeId"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	Suggestions string    `json:"suggestions"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// FeedbackInfoResponse is the public feedback-form context for a nominee
type FeedbackInfoResponse struct {
	NomineeName string `json:"nomineeName"`
	EventTitle  string `json:"eventTitle"`
	Status      string `json:"status"`
	HasFeedback bool   `json:"hasFeedback"`
}

// EventFeedbackItem is one feedback row joined with its nominee, as listed
// per event and exported to CSV
type EventFeedbackItem struct {
	FeedbackResponse
	NomineeName       string `json:"nomineeName"`
	NomineeEmail      string `json:"nomineeEmail"`
	NomineeDepartment string `json:"nomineeDepartment"`
}
