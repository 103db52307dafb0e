package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/logger"
)

// HandleAPIError translates service errors into HTTP responses. The error
// message is passed through so callers see which entity or rule failed.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrRequestNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrCompilationNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		respond(c, http.StatusConflict, dto.ErrorCodeCapacityExceeded, err)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, err)
	case errors.Is(err, apperrors.ErrValidation):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	case errors.Is(err, apperrors.ErrDependency):
		respond(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, err)
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, err.Error())))
}
