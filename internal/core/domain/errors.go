package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUserInactive       = errors.New("user account is inactive")
)

// ValidationError carries every policy rule a registration request
// violated. Rules are collected, not short-circuited, so the client
// sees the full list in one response.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

// NewValidationError creates a validation error from collected issues
func NewValidationError(issues []string) *ValidationError {
	return &ValidationError{Issues: issues}
}
