package models

// Nominee represents a person invited to a training event.
// A nominee belongs to exactly one event and owns at most one feedback record.
type Nominee struct {
	ID         int64         `json:"id" db:"id"`
	EventID    int64         `json:"eventId" db:"event_id"`
	Name       string        `json:"name" db:"name"`
	Email      string        `json:"email" db:"email"`
	EmployeeID string        `json:"employeeId" db:"employee_id"`
	Department string        `json:"department" db:"department"`
	Status     NomineeStatus `json:"status" db:"status"`
}

// NomineeCounts holds per-status nominee totals for one event
type NomineeCounts struct {
	Total    int `json:"totalNominees"`
	Pending  int `json:"pendingCount"`
	Accepted int `json:"acceptedCount"`
	Rejected int `json:"rejectedCount"`
	Attended int `json:"attendedCount"`
}
