package models

// NomineeStatus defines the invitation/attendance state of a nominee
type NomineeStatus string

const (
	// StatusPending is the initial state after invitation
	StatusPending NomineeStatus = "Pending"
	// StatusAccepted means the nominee accepted the invitation
	StatusAccepted NomineeStatus = "Accepted"
	// StatusRejected means the nominee rejected the invitation
	StatusRejected NomineeStatus = "Rejected"
	// StatusAttended means an accepted nominee was marked present at the event
	StatusAttended NomineeStatus = "Attended"
)

// Valid reports whether s is one of the known nominee statuses
func (s NomineeStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusAttended:
		return true
	}
	return false
}
