package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
	"github.com/oguzt/trainhub/internal/pkg/dberrors"
)

// FeedbackWithNominee is one feedback row joined with its nominee, used for
// per-event listings and CSV export
type FeedbackWithNominee struct {
	models.Feedback
	NomineeName       string
	NomineeEmail      string
	NomineeDepartment string
}

// FeedbackRepository handles database operations for feedback records
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// Upsert inserts a feedback record, or updates the existing one in place when
// the nominee already submitted. The submission timestamp is set on first
// insert and preserved on update. Returns whether a new row was created.
func (r *FeedbackRepository) Upsert(ctx context.Context, feedback *models.Feedback) (bool, error) {
	query := `
		INSERT INTO feedback (nominee_id, rating, comments, suggestions)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT feedback_nominee_id_key
		DO UPDATE SET rating = EXCLUDED.rating,
		              comments = EXCLUDED.comments,
		              suggestions = EXCLUDED.suggestions
		RETURNING id, submitted_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		feedback.NomineeID, feedback.Rating, feedback.Comments, feedback.Suggestions,
	).Scan(&feedback.ID, &feedback.SubmittedAt, &inserted)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrNomineeNotFound
		}
		return false, fmt.Errorf("error saving feedback: %w", err)
	}

	return inserted, nil
}

// GetByNomineeID retrieves the feedback record for a nominee
func (r *FeedbackRepository) GetByNomineeID(ctx context.Context, nomineeID int64) (*models.Feedback, error) {
	query := `
		SELECT id, nominee_id, rating, comments, suggestions, submitted_at
		FROM feedback
		WHERE nominee_id = $1
	`

	var feedback models.Feedback
	err := r.db.QueryRow(ctx, query, nomineeID).Scan(
		&feedback.ID,
		&feedback.NomineeID,
		&feedback.Rating,
		&feedback.Comments,
		&feedback.Suggestions,
		&feedback.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	return &feedback, nil
}

// ExistsForNominee checks whether a nominee already has a feedback record
func (r *FeedbackRepository) ExistsForNominee(ctx context.Context, nomineeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM feedback WHERE nominee_id = $1)`,
		nomineeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking feedback existence: %w", err)
	}

	return exists, nil
}

// GetByEventID retrieves all feedback for an event joined with nominee
// details, ordered by nominee name
func (r *FeedbackRepository) GetByEventID(ctx context.Context, eventID int64) ([]*FeedbackWithNominee, error) {
	query := `
		SELECT f.id, f.nominee_id, f.rating, f.comments, f.suggestions, f.submitted_at,
		       n.name, n.email, n.department
		FROM feedback f
		JOIN nominees n ON n.id = f.nominee_id
		WHERE n.event_id = $1
		ORDER BY n.name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*FeedbackWithNominee
	for rows.Next() {
		var item FeedbackWithNominee
		if err := rows.Scan(
			&item.ID,
			&item.NomineeID,
			&item.Rating,
			&item.Comments,
			&item.Suggestions,
			&item.SubmittedAt,
			&item.NomineeName,
			&item.NomineeEmail,
			&item.NomineeDepartment,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
