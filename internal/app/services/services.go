package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: admin login/logout over server-side sessions
// - EventService: event CRUD and the list/detail projections
// - NomineeService: the nominee lifecycle (invite, accept/reject, attend,
//   feedback blast)
// - FeedbackService: feedback submission, listing and CSV export
//
// Services consume narrow store interfaces so the lifecycle rules can be
// tested against in-memory fakes; the pgx repositories satisfy them.

// EventStore is the persistence surface the services need for events
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// NomineeStore is the persistence surface for nominees
type NomineeStore interface {
	Create(ctx context.Context, nominee *models.Nominee) error
	GetByID(ctx context.Context, id int64) (*models.Nominee, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*models.Nominee, error)
	GetByEventAndStatus(ctx context.Context, eventID int64, status models.NomineeStatus) ([]*models.Nominee, error)
	Update(ctx context.Context, nominee *models.Nominee) error
	UpdateStatus(ctx context.Context, id int64, from, to models.NomineeStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, eventID int64) (models.NomineeCounts, error)
}

// FeedbackStore is the persistence surface for feedback records
type FeedbackStore interface {
	Upsert(ctx context.Context, feedback *models.Feedback) (bool, error)
	GetByNomineeID(ctx context.Context, nomineeID int64) (*models.Feedback, error)
	ExistsForNominee(ctx context.Context, nomineeID int64) (bool, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*repositories.FeedbackWithNominee, error)
}

// AdminStore is the persistence surface for admin accounts
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// SessionStore is the persistence surface for login sessions
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
