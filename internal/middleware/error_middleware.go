package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
	"github.com/oguzt/trainhub/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// this for any service error so status codes and payload shape stay uniform.
func HandleAPIError(ctx *gin.Context, err error) {
	status, detail := classifyError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled API error")
	}

	ctx.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrNomineeNotFound),
		errors.Is(err, apperrors.ErrFeedbackNotFound),
		errors.Is(err, apperrors.ErrAdminNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")

	case errors.Is(err, apperrors.ErrSessionExpired),
		errors.Is(err, apperrors.ErrSessionNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredSession, "Session expired, please log in again")

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrAuthRequired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	case errors.Is(err, apperrors.ErrPreconditionFailed),
		errors.Is(err, apperrors.ErrNoAttendedNominees):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodePreconditionFailed, message)

	case errors.Is(err, apperrors.ErrUsernameExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)

	case errors.Is(err, apperrors.ErrInvitationSendError):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeEmailDelivery, message)

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}
