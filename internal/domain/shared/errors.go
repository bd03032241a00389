// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrDataAnomaly  = errors.New("data anomaly: non-monotonic timestamp")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// External service errors
	ErrExternalService = errors.New("external service error")
	ErrTimeout         = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "user", "session", "leaderboard"
	Op      string // Operation that failed, e.g., "Start", "UpdateStreak"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// User domain errors
var (
	ErrUserNotFound       = NewDomainError("user", "Find", ErrNotFound, "user not found")
	ErrUserAlreadyExists  = NewDomainError("user", "Register", ErrAlreadyExists, "username already taken")
	ErrInvalidCredentials = NewDomainError("user", "Login", ErrUnauthorized, "invalid username or password")
	ErrStreakDateAnomaly  = NewDomainError("user", "UpdateStreak", ErrDataAnomaly, "study date is earlier than last recorded date")
)

// Session domain errors
var (
	ErrSessionNotFound      = NewDomainError("session", "Find", ErrNotFound, "session not found")
	ErrSessionAlreadyActive = NewDomainError("session", "Start", ErrAlreadyExists, "a study session is already in progress")
	ErrNoActiveSession      = NewDomainError("session", "End", ErrNotFound, "no study session in progress")
	ErrSessionAlreadyEnded  = NewDomainError("session", "End", ErrInvalidState, "session already completed")
)

// Group domain errors
var (
	ErrGroupNotFound      = NewDomainError("group", "Find", ErrNotFound, "study group not found")
	ErrGroupAlreadyExists = NewDomainError("group", "Create", ErrAlreadyExists, "a group with this name already exists")
	ErrGroupFull          = NewDomainError("group", "Join", ErrValueOutOfRange, "group has reached its member limit")
	ErrAlreadyMember      = NewDomainError("group", "Join", ErrAlreadyExists, "already a member of this group")
)

// Reminder domain errors
var (
	ErrReminderNotFound = NewDomainError("reminder", "Find", ErrNotFound, "reminder not found")
)

// External service errors
var (
	ErrQuoteServiceUnavailable = NewDomainError("quotes", "Fetch", ErrExternalService, "quote service is unavailable")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsDataAnomaly checks if the error reports a non-monotonic timestamp or date.
func IsDataAnomaly(err error) bool {
	return errors.Is(err, ErrDataAnomaly)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}
