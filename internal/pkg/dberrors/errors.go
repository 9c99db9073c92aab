package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes the API distinguishes
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
	CodeCheckViolation      = "23514"
	CodeInvalidTextRep      = "22P02"
	CodeNumericOutOfRange   = "22003"
	CodeStringTooLong       = "22001"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports whether err is any unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// Translate maps a driver error onto the application error taxonomy. Errors it does
// not recognise are returned unchanged so callers can wrap them as internal failures.
func Translate(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError(entity + " not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case CodeUniqueViolation:
		return apperrors.NewCustomError(apperrors.ErrConflict, entity+" already exists").
			WithDetail("constraint", pgErr.ConstraintName)
	case CodeForeignKeyViolation:
		return apperrors.NewCustomError(apperrors.ErrConflict, entity+" references a missing record or is still referenced").
			WithDetail("constraint", pgErr.ConstraintName)
	case CodeNotNullViolation:
		return apperrors.NewValidationError(pgErr.ColumnName + " is required")
	case CodeCheckViolation, CodeInvalidTextRep, CodeNumericOutOfRange, CodeStringTooLong:
		return apperrors.NewValidationError("invalid " + entity + " data")
	default:
		return err
	}
}
