package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrBorrowerNotFound = errors.New("borrower not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidBorrower  = errors.New("invalid borrower data")
	ErrUnknownStatus    = errors.New("unknown status token")
	ErrUnknownRole      = errors.New("unknown role token")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeBorrowerNotFound = "BORROWER_NOT_FOUND"
	ErrCodeReportNotFound   = "REPORT_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeUserExists       = "USER_ALREADY_EXISTS"
	ErrCodeUnknownStatus    = "UNKNOWN_STATUS"
	ErrCodeUnknownRole      = "UNKNOWN_ROLE"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapValidationError(field, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("invalid %s: %s", field, reason),
		ErrInvalidBorrower,
	)
}

func WrapBorrowerNotFound(borrowerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowerNotFound,
		fmt.Sprintf("borrower with ID %s not found", borrowerID),
		ErrBorrowerNotFound,
	)
}

func WrapReportNotFound(reportID string) *BusinessError {
	return NewBusinessError(
		ErrCodeReportNotFound,
		fmt.Sprintf("report with ID %s not found", reportID),
		ErrReportNotFound,
	)
}

func WrapUserNotFound(userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("user with ID %s not found", userID),
		ErrUserNotFound,
	)
}

func WrapUserExists(username string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserExists,
		fmt.Sprintf("user with username %s already exists", username),
		ErrUserExists,
	)
}

func WrapUnknownStatus(token string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnknownStatus,
		fmt.Sprintf("unknown status token %q", token),
		ErrUnknownStatus,
	)
}

func WrapUnknownRole(token string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnknownRole,
		fmt.Sprintf("unknown role token %q", token),
		ErrUnknownRole,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
