package dto

// NomineeCreateRequest is one entry of a batch invite. Entries are validated
// individually so one bad entry never aborts the rest of the batch.
type NomineeCreateRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	EmployeeID string `json:"employeeId" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// NomineeUpdateRequest updates a nominee's descriptive fields. Status is not
// updatable here; it only moves through the lifecycle endpoints.
type NomineeUpdateRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	EmployeeID *string `json:"employeeId"`
	Department *string `json:"department"`
}

// NomineeResponse represents one nominee with any embedded feedback
type NomineeResponse struct {
	ID         int64             `json:"id"`
	EventID    int64             `json:"eventId"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	EmployeeID string            `json:"employeeId"`
	Department string            `json:"department"`
	Status     string            `json:"status"`
	Feedback   *FeedbackResponse `json:"feedback,omitempty"`
}

// BatchInviteError describes one failed entry of a batch invite
type BatchInviteError struct {
	Email   string            `json:"email,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// BatchInviteResult is the structured outcome of a batch invite: successfully
// created nominees and per-entry errors, never an all-or-nothing abort.
type BatchInviteResult struct {
	Created []NomineeResponse  `json:"created"`
	Errors  []BatchInviteError `json:"errors"`
}
