package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/repositories"
	"github.com/oguzt/trainhub/internal/config"
	"github.com/oguzt/trainhub/internal/pkg/auth"
)

// CreateDefaultAdmin ensures the configured admin account exists so a fresh
// deployment can be logged into. Does nothing when the username is already
// taken or no admin credentials are configured.
func CreateDefaultAdmin(ctx context.Context, admins *repositories.AdminRepository, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		lgr.Warn().Msg("No default admin configured, skipping seed")
		return nil
	}

	exists, err := admins.UsernameExists(ctx, cfg.Admin.Username)
	if err != nil {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		lgr.Debug().Str("username", cfg.Admin.Username).Msg("Default admin already exists")
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Admin{
		Username: cfg.Admin.Username,
		Password: hash,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Str("username", admin.Username).Msg("Default admin created")
	return nil
}
