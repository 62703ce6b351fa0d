package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
	"github.com/oguzt/trainhub/internal/pkg/auth"
)

// Identity is the authenticated admin resolved from a session token
type Identity struct {
	SessionID uuid.UUID
	AdminID   int64
	Username  string
}

// AuthService handles admin login, logout and session resolution. Sessions
// live server-side; the client only holds a signed token carrying the
// session id, so deleting the row revokes the login immediately.
type AuthService struct {
	admins   AdminStore
	sessions SessionStore
	tokens   *auth.TokenService
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(admins AdminStore, sessions SessionStore, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		admins:   admins,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login verifies admin credentials and opens a new session. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return nil, time.Time{}, apperrors.ErrInvalidCredentials
		}
		return nil, time.Time{}, fmt.Errorf("error looking up admin: %w", err)
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		return nil, time.Time{}, apperrors.ErrInvalidCredentials
	}

	// Opportunistic cleanup; stale sessions also get rejected on use.
	if n, err := s.sessions.DeleteExpired(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to delete expired sessions")
	} else if n > 0 {
		s.logger.Debug().Int64("count", n).Msg("Deleted expired sessions")
	}

	sessionID := uuid.New()
	token, expiresAt, err := s.tokens.GenerateToken(sessionID, admin.ID, admin.Username)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("error generating session token: %w", err)
	}

	session := &models.Session{
		ID:        sessionID,
		AdminID:   admin.ID,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, time.Time{}, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info().Str("username", admin.Username).Msg("Admin logged in")

	return &dto.LoginResponse{
		Message:   "Login successful",
		Username:  admin.Username,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, expiresAt, nil
}

// Logout revokes a session. An already-deleted session is treated as logged
// out rather than an error.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to the admin identity. The token
// signature, the token expiry and the server-side session row must all be
// valid; an expired session row is deleted on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, fmt.Errorf("error looking up session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID.String()).Msg("Failed to delete expired session")
		}
		return nil, apperrors.ErrSessionExpired
	}

	return &Identity{
		SessionID: session.ID,
		AdminID:   claims.AdminID,
		Username:  claims.Username,
	}, nil
}
