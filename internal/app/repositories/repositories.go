package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	EventRepository    *EventRepository
	NomineeRepository  *NomineeRepository
	FeedbackRepository *FeedbackRepository
	AdminRepository    *AdminRepository
	SessionRepository  *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		EventRepository:    NewEventRepository(db),
		NomineeRepository:  NewNomineeRepository(db),
		FeedbackRepository: NewFeedbackRepository(db),
		AdminRepository:    NewAdminRepository(db),
		SessionRepository:  NewSessionRepository(db),
	}
}
