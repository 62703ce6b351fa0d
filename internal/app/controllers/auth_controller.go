package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/middleware"
)

// AuthController handles admin login, logout and the session check
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login verifies credentials, opens a session and sets the session cookie
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, expiresAt, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, resp.Token, maxAge, "/", "", false, true)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Logout revokes the current session and clears the cookie. Runs behind the
// auth middleware, which already resolved the session.
func (c *AuthController) Logout(ctx *gin.Context) {
	if value, ok := ctx.Get(middleware.ContextSessionID); ok {
		if sessionID, ok := value.(uuid.UUID); ok {
			if err := c.authService.Logout(ctx, sessionID); err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
		}
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// CheckAuth reports whether the caller holds a live session. Unlike the
// guarded endpoints it answers 401 with an explicit authenticated:false body
// instead of the error envelope, so the frontend can poll it cheaply.
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	token := middleware.TokenFromRequest(ctx)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	identity, err := c.authService.Authenticate(ctx, token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CheckAuthResponse{Authenticated: true, Username: identity.Username},
		Timestamp: time.Now(),
	})
}
