package repositories

import (
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/dberrors"
	"github.com/yigit/enlistment/internal/pkg/logger"
)

// translate maps a driver error to the application taxonomy and logs
// failures that are not part of normal request handling.
func translate(err error, operation, entity string) error {
	mapped := dberrors.Translate(err, entity)
	if !apperrors.Is(mapped, apperrors.ErrResourceNotFound, apperrors.ErrConflict, apperrors.ErrValidationFailed) {
		logger.Error().Err(err).Str("operation", operation).Msg("Database operation failed")
	}
	return mapped
}
