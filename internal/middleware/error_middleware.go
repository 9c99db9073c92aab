package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/logger"
)

// HandleAPIError maps an application error onto a status code and error body.
// Unrecognised errors are logged and reported as a generic internal failure.
func HandleAPIError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, *dto.ErrorResponse) {
	withDetails := func(resp *dto.ErrorResponse) *dto.ErrorResponse {
		if details := apperrors.DetailsOf(err); len(details) > 0 {
			resp.Details = details
		}
		return resp
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withDetails(dto.NewErrorResponse(dto.ErrorCodeResourceNotFound,
			apperrors.PublicMessage(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withDetails(dto.NewErrorResponse(dto.ErrorCodeValidationFailed,
			apperrors.PublicMessage(err, "Validation failed")))
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeInvalidCredentials,
			apperrors.PublicMessage(err, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, withDetails(dto.NewErrorResponse(dto.ErrorCodeConflict,
			apperrors.PublicMessage(err, "Conflict")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Invalid or expired token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeForbidden,
			apperrors.PublicMessage(err, "Permission denied"))
	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
