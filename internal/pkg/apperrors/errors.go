// Package apperrors defines the error kinds the HTTP layer maps onto status codes.
package apperrors

import "errors"

// Kinds. Every error returned to a handler should wrap exactly one of these.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidationFailed   = errors.New("validation failed")
	ErrBadRequest         = errors.New("bad request")
)

var (
	ErrUserNotFound           = NewResourceNotFoundError("User not found")
	ErrUsernameAlreadyExists  = NewConflictError("Username already exists")
	ErrInvalidCurrentPassword = NewCustomError(ErrInvalidCredentials, "Invalid current password")
	ErrInvalidLogin           = NewCustomError(ErrInvalidCredentials, "Invalid username or password")

	ErrSectionArchived     = NewConflictError("Section is archived")
	ErrSectionFull         = NewConflictError("Section is full")
	ErrDuplicateEnrollment = NewConflictError("Student is already enrolled in this section for the term")
)

// Details is extra client-visible context rendered under "details".
type Details map[string]interface{}

// CustomError pairs a kind with a message that is safe to show to clients.
type CustomError struct {
	Err     error
	Message string
	Details Details
}

// NewCustomError creates a CustomError of the given kind.
func NewCustomError(kind error, message string) *CustomError {
	return &CustomError{Err: kind, Message: message}
}

func NewResourceNotFoundError(message string) error { return NewCustomError(ErrResourceNotFound, message) }
func NewConflictError(message string) error         { return NewCustomError(ErrConflict, message) }
func NewForbiddenError(message string) error        { return NewCustomError(ErrPermissionDenied, message) }
func NewValidationError(message string) error       { return NewCustomError(ErrValidationFailed, message) }

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of e carrying key=value. The receiver is left
// untouched so package-level sentinels stay shareable.
func (e *CustomError) WithDetail(key string, value interface{}) *CustomError {
	details := make(Details, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &CustomError{Err: e.Err, Message: e.Message, Details: details}
}

// Is reports whether err matches any of the targets.
func Is(err, target error, more ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, t := range more {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// PublicMessage returns the message of the outermost CustomError in err's chain,
// or fallback when there is none.
func PublicMessage(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// DetailsOf returns the details of the outermost CustomError in err's chain.
func DetailsOf(err error) Details {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return nil
}
