package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/pizza-delivery/internal/auth"
	"github.com/spec-kit/pizza-delivery/internal/config"
	"github.com/spec-kit/pizza-delivery/internal/domain"
	"github.com/spec-kit/pizza-delivery/internal/observability"
	"github.com/spec-kit/pizza-delivery/internal/repository"
)

// AttemptLimiter tracks failed logins per email.
type AttemptLimiter interface {
	Failures(ctx context.Context, email string) (int64, error)
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

// AuthService coordinates registration, login and token refresh.
type AuthService struct {
	users               repository.UserRepository
	hasher              *auth.PasswordHasher
	tokens              *auth.TokenManager
	attempts            AttemptLimiter
	maxAttempts         int64
	hideUnknownAccounts bool
	metrics             *observability.Metrics
	logger              *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
// Attempts and Metrics are optional.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Attempts AttemptLimiter
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// RegisterInput describes a signup request.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Role     string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	domain.TokenPair
	Email string
	Role  domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:               deps.UserRepo,
		hasher:              auth.NewPasswordHasher(cfg.BcryptCost),
		tokens:              deps.Tokens,
		attempts:            deps.Attempts,
		maxAttempts:         int64(cfg.LoginMaxAttempts),
		hideUnknownAccounts: cfg.HideUnknownAccounts,
		metrics:             deps.Metrics,
		logger:              logger,
	}
}

// Register creates a new account. An empty role defaults to user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := domain.RoleUser
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	// The insert still enforces uniqueness for concurrent signups.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	result, err := s.login(ctx, email, password)
	if err != nil {
		s.metrics.RecordLogin(loginFailureLabel(err))
		return nil, err
	}
	s.metrics.RecordLogin("success")
	return result, nil
}

func (s *AuthService) login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.throttled(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			if s.hideUnknownAccounts {
				return nil, domain.ErrInvalidCredentials
			}
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	pair, err := s.tokens.IssuePair(domain.SubjectOf(user))
	if err != nil {
		return nil, err
	}
	s.resetFailures(ctx, email)

	return &LoginResult{TokenPair: *pair, Email: user.Email, Role: user.Role}, nil
}

// Refresh exchanges a refresh token for a new access token carrying the account's current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.Type != domain.TokenTypeRefresh {
		return "", time.Time{}, domain.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", time.Time{}, domain.ErrUnknownSubject
		}
		return "", time.Time{}, err
	}
	if !user.Active {
		return "", time.Time{}, domain.ErrAccountDisabled
	}
	return s.tokens.IssueAccess(domain.SubjectOf(user))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.attempts == nil || s.maxAttempts <= 0 {
		return false
	}
	failures, err := s.attempts.Failures(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		return false
	}
	return failures >= s.maxAttempts
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.attempts == nil || s.maxAttempts <= 0 {
		return
	}
	if _, err := s.attempts.RecordFailure(ctx, email); err != nil {
		s.logger.Warn("record login failure", zap.Error(err))
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.attempts == nil || s.maxAttempts <= 0 {
		return
	}
	if err := s.attempts.Reset(ctx, email); err != nil {
		s.logger.Warn("reset login failures", zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loginFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
