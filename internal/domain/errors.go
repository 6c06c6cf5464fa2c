package domain

import "errors"

// Account errors.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUnknownRole        = errors.New("unknown role")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// Token and guard errors.
var (
	ErrMissingToken          = errors.New("authorization token is missing")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrUnknownSubject        = errors.New("token subject not found")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)

// Order errors.
var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrder            = errors.New("invalid order")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)
