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

// AdminRepository handles database operations for administrator accounts
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

// Create creates a new admin account. Password must already be hashed.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (username, password)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, admin.Username, admin.Password).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "admins_username_key") {
			return apperrors.ErrUsernameExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}

	return nil
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password, created_at
		FROM admins
		WHERE username = $1
	`

	var admin models.Admin
	err := r.db.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Password,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}

	return &admin, nil
}

// UsernameExists checks whether an admin account exists for a username
func (r *AdminRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking admin existence: %w", err)
	}

	return exists, nil
}
