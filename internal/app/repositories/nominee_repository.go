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

// NomineeRepository handles database operations for nominees
type NomineeRepository struct {
	db *pgxpool.Pool
}

// NewNomineeRepository creates a new nominee repository
func NewNomineeRepository(db *pgxpool.Pool) *NomineeRepository {
	return &NomineeRepository{
		db: db,
	}
}

// Create creates a new nominee and fills in its id
func (r *NomineeRepository) Create(ctx context.Context, nominee *models.Nominee) error {
	query := `
		INSERT INTO nominees (event_id, name, email, employee_id, department, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		nominee.EventID, nominee.Name, nominee.Email, nominee.EmployeeID,
		nominee.Department, nominee.Status,
	).Scan(&nominee.ID)
	if err != nil {
		// FK violation means the event disappeared under us
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error creating nominee: %w", err)
	}

	return nil
}

// GetByID retrieves a nominee by ID
func (r *NomineeRepository) GetByID(ctx context.Context, id int64) (*models.Nominee, error) {
	query := `
		SELECT id, event_id, name, email, employee_id, department, status
		FROM nominees
		WHERE id = $1
	`

	var nominee models.Nominee
	err := r.db.QueryRow(ctx, query, id).Scan(
		&nominee.ID,
		&nominee.EventID,
		&nominee.Name,
		&nominee.Email,
		&nominee.EmployeeID,
		&nominee.Department,
		&nominee.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNomineeNotFound
		}
		return nil, fmt.Errorf("error retrieving nominee: %w", err)
	}

	return &nominee, nil
}

// GetByEventID retrieves all nominees for an event, ordered by name
func (r *NomineeRepository) GetByEventID(ctx context.Context, eventID int64) ([]*models.Nominee, error) {
	query := `
		SELECT id, event_id, name, email, employee_id, department, status
		FROM nominees
		WHERE event_id = $1
		ORDER BY name
	`

	return r.queryNominees(ctx, query, eventID)
}

// GetByEventAndStatus retrieves an event's nominees with a given status
func (r *NomineeRepository) GetByEventAndStatus(ctx context.Context, eventID int64, status models.NomineeStatus) ([]*models.Nominee, error) {
	query := `
		SELECT id, event_id, name, email, employee_id, department, status
		FROM nominees
		WHERE event_id = $1 AND status = $2
		ORDER BY name
	`

	return r.queryNominees(ctx, query, eventID, status)
}

func (r *NomineeRepository) queryNominees(ctx context.Context, query string, args ...interface{}) ([]*models.Nominee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nominees []*models.Nominee
	for rows.Next() {
		var nominee models.Nominee
		if err := rows.Scan(
			&nominee.ID,
			&nominee.EventID,
			&nominee.Name,
			&nominee.Email,
			&nominee.EmployeeID,
			&nominee.Department,
			&nominee.Status,
		); err != nil {
			return nil, err
		}
		nominees = append(nominees, &nominee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nominees, nil
}

// Update updates a nominee's descriptive fields. Status changes go through
// UpdateStatus only.
func (r *NomineeRepository) Update(ctx context.Context, nominee *models.Nominee) error {
	query := `
		UPDATE nominees
		SET name = $1, email = $2, employee_id = $3, department = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		nominee.Name, nominee.Email, nominee.EmployeeID, nominee.Department, nominee.ID)
	if err != nil {
		return fmt.Errorf("error updating nominee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNomineeNotFound
	}

	return nil
}

// UpdateStatus moves a nominee from one status to another with a
// compare-and-swap: the row only changes when its current status equals the
// expected one, so two concurrent transitions on the same nominee cannot both
// win. Returns whether the row moved.
func (r *NomineeRepository) UpdateStatus(ctx context.Context, id int64, from, to models.NomineeStatus) (bool, error) {
	query := `
		UPDATE nominees
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("error updating nominee status: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// Delete deletes a nominee by ID. Any feedback record cascades in the schema.
func (r *NomineeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM nominees WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting nominee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNomineeNotFound
	}

	return nil
}

// CountByStatus computes per-status nominee counts for an event. Counts are
// always derived from the rows, never stored.
func (r *NomineeRepository) CountByStatus(ctx context.Context, eventID int64) (models.NomineeCounts, error) {
	query := `
		SELECT status, COUNT(*)
		FROM nominees
		WHERE event_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return models.NomineeCounts{}, fmt.Errorf("error counting nominees: %w", err)
	}
	defer rows.Close()

	var counts models.NomineeCounts
	for rows.Next() {
		var status models.NomineeStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return models.NomineeCounts{}, err
		}

		counts.Total += n
		switch status {
		case models.StatusPending:
			counts.Pending = n
		case models.StatusAccepted:
			counts.Accepted = n
		case models.StatusRejected:
			counts.Rejected = n
		case models.StatusAttended:
			counts.Attended = n
		}
	}

	if err := rows.Err(); err != nil {
		return models.NomineeCounts{}, err
	}

	return counts, nil
}
