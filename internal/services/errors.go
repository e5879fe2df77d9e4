package services

import (
	"errors"

	apperrors "github.com/formforge/form-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Form specific errors
	ErrFormNotFound = errors.New("form not found")

	// Response specific errors
	ErrResponseNotFound = errors.New("response not found")

	// Submission-closed errors; both mean the form is no longer
	// accepting responses, distinguishable by reason.
	ErrFormNotPublic            = errors.New("form is not public")
	ErrSubmissionDeadlinePassed = errors.New("form deadline has passed")
	ErrSubmissionLimitReached   = errors.New("form response limit reached")

	// Upload specific errors
	ErrUploadNotImage = errors.New("only image files are allowed")
	ErrUploadTooLarge = errors.New("file size too large, maximum size is 5MB")
	ErrUploadEmpty    = errors.New("no image file provided")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsSubmissionClosed checks if error means the form is no longer
// accepting responses
func IsSubmissionClosed(err error) bool {
	return errors.Is(err, ErrFormNotPublic) ||
		errors.Is(err, ErrSubmissionDeadlinePassed) ||
		errors.Is(err, ErrSubmissionLimitReached)
}
