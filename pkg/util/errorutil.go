package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pizza-delivery/internal/domain"
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

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

type sentinelMapping struct {
	target error
	code   string
	status int
}

// Order matters: the first matching sentinel wins.
var sentinels = []sentinelMapping{
	{domain.ErrDuplicateEmail, "DUPLICATE_EMAIL", http.StatusConflict},
	{domain.ErrDuplicateUsername, "DUPLICATE_USERNAME", http.StatusConflict},
	{domain.ErrUserNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
	{domain.ErrAccountDisabled, "ACCOUNT_DISABLED", http.StatusForbidden},
	{domain.ErrTooManyAttempts, "TOO_MANY_ATTEMPTS", http.StatusTooManyRequests},
	{domain.ErrUnknownRole, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrPasswordTooLong, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrMissingToken, "MISSING_TOKEN", http.StatusUnauthorized},
	{domain.ErrTokenExpired, "TOKEN_EXPIRED", http.StatusUnauthorized},
	{domain.ErrTokenInvalid, "TOKEN_INVALID", http.StatusUnauthorized},
	{domain.ErrUnknownSubject, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrInsufficientPrivilege, "FORBIDDEN", http.StatusForbidden},
	{domain.ErrOrderNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrInvalidOrder, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrInvalidStatus, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrInvalidStatusTransition, "INVALID_STATUS_TRANSITION", http.StatusUnprocessableEntity},
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.target) {
			// Only the sentinel text reaches the client, never wrapped detail.
			return &DomainError{Code: s.code, Message: s.target.Error(), HTTPStatus: s.status}
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{Code: codeForStatus(fiberErr.Code), Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusRequestTimeout:
		return "TIMEOUT"
	}
	if status >= http.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "REQUEST_FAILED"
}
