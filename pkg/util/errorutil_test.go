package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

func TestToDomainErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{domain.ErrDuplicateUsername, http.StatusConflict, "DUPLICATE_USERNAME"},
		{domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrMissingToken, http.StatusUnauthorized, "MISSING_TOKEN"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{domain.ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
		{domain.ErrUnknownSubject, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInsufficientPrivilege, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
		{domain.ErrInvalidStatusTransition, http.StatusUnprocessableEntity, "INVALID_STATUS_TRANSITION"},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		require.Equal(t, tc.status, de.HTTPStatus, tc.err.Error())
		require.Equal(t, tc.code, de.Code, tc.err.Error())
	}
}

func TestToDomainErrorHidesWrappedDetail(t *testing.T) {
	err := fmt.Errorf("%w: signature is invalid", domain.ErrTokenInvalid)
	de := ToDomainError(err)
	require.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	require.Equal(t, domain.ErrTokenInvalid.Error(), de.Message)
}

func TestToDomainErrorUnknownIsInternal(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	de := ToDomainError(cause)
	require.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	require.Equal(t, "internal server error", de.Message)
	require.ErrorIs(t, de, cause)
}

func TestToDomainErrorPassThrough(t *testing.T) {
	original := NewDomainError("CUSTOM", "custom", http.StatusTeapot, nil)
	require.Same(t, original, ToDomainError(fmt.Errorf("wrap: %w", original)))
	require.Nil(t, ToDomainError(nil))
}

func TestToDomainErrorFiberAndPgx(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
	require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	require.Equal(t, "invalid payload", de.Message)

	de = ToDomainError(pgx.ErrNoRows)
	require.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
