package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewInvalidCredential covers missing, malformed, expired and tampered
// tokens alike. A single code keeps callers from probing which check failed.
func NewInvalidCredential() error {
	return NewDomainError("INVALID_CREDENTIAL", "invalid or expired credential", http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewResourceInactive signals a mutation attempt on a soft-deleted record.
func NewResourceInactive(resource string) error {
	return NewDomainError("RESOURCE_INACTIVE", fmt.Sprintf("%s is inactive", resource), http.StatusConflict, nil)
}

func NewSubscriberInactive() error {
	return NewDomainError("SUBSCRIBER_INACTIVE", "user is not active", http.StatusForbidden, nil)
}

func NewSubscriberUnverified() error {
	return NewDomainError("SUBSCRIBER_UNVERIFIED", "user email is not verified", http.StatusForbidden, nil)
}

func NewEventInactive() error {
	return NewDomainError("EVENT_INACTIVE", "event is not active", http.StatusForbidden, nil)
}

func NewEventExpired() error {
	return NewDomainError("EVENT_EXPIRED", "event date is in the past", http.StatusForbidden, nil)
}

func NewDuplicateSubscription() error {
	return NewConflict("subscription already exists", nil)
}

func NewInvalidCursor() error {
	return NewDomainError("INVALID_CURSOR", "invalid lastKey format", http.StatusBadRequest, nil)
}

func NewMisconfiguration(message string) error {
	return NewDomainError("MISCONFIGURATION", message, http.StatusInternalServerError, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, preserving the
// status-code category of known failures and hiding everything else behind
// a client-safe message.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
