package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/pkg/auth"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session"

// Context keys set for handlers behind the auth middleware
const (
	ContextAdminID   = "adminID"
	ContextUsername  = "username"
	ContextSessionID = "sessionID"
)

// RequireAuth guards management endpoints. The session token is read from
// the cookie first, then from the Authorization header for non-browser
// clients; either way the server-side session row must still exist.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := TokenFromRequest(ctx)
		if token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		identity, err := authService.Authenticate(ctx, token)
		if err != nil {
			_, detail := classifyError(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		ctx.Set(ContextAdminID, identity.AdminID)
		ctx.Set(ContextUsername, identity.Username)
		ctx.Set(ContextSessionID, identity.SessionID)
		ctx.Next()
	}
}

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header, returning "" when neither is present
func TokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := ctx.GetHeader("Authorization"); header != "" {
		if token, err := auth.ExtractBearerToken(header); err == nil {
			return token
		}
	}
	return ""
}
