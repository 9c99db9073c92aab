package dberrors

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrResourceNotFound},
		{"unique", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "course_course_code_key"}, apperrors.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: CodeForeignKeyViolation}, apperrors.ErrConflict},
		{"not null", &pgconn.PgError{Code: CodeNotNullViolation, ColumnName: "course_name"}, apperrors.ErrValidationFailed},
		{"check", &pgconn.PgError{Code: CodeCheckViolation}, apperrors.ErrValidationFailed},
		{"unknown", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Translate(tt.err, "course"), tt.target)
		})
	}

	assert.NoError(t, Translate(nil, "course"))
}

func TestTranslateCarriesConstraint(t *testing.T) {
	err := Translate(&pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "course_course_code_key"}, "Course")

	assert.Equal(t, "Course already exists", apperrors.PublicMessage(err, ""))
	assert.Equal(t, apperrors.Details{"constraint": "course_course_code_key"}, apperrors.DetailsOf(err))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_username_key"}

	assert.True(t, IsDuplicateConstraintError(err, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(err, "role_role_code_key"))
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}
