package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/form-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Form specific errors
	ErrFormNotFound  = errors.New("form not found")
	ErrInvalidFormID = errors.New("invalid form id")

	// Response specific errors
	ErrResponseNotFound  = errors.New("response not found")
	ErrInvalidResponseID = errors.New("invalid response id")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidFormID) ||
		errors.Is(err, ErrInvalidResponseID) ||
		apperrors.IsValidation(err)
}
