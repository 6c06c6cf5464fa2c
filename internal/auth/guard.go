package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

// TokenVerifier validates raw tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserLookup loads identities by id. Implementations return domain.ErrUserNotFound for unknown ids.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Guard resolves the caller from a bearer token and enforces role allow-lists.
type Guard struct {
	tokens TokenVerifier
	users  UserLookup
}

// NewGuard constructs a guard.
func NewGuard(tokens TokenVerifier, users UserLookup) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrTokenInvalid
	}
	if len(parts) != 2 {
		return "", domain.ErrMissingToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrMissingToken
	}
	return token, nil
}

// Authenticate verifies an access token from the Authorization header and loads its subject.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (*domain.User, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != domain.TokenTypeAccess {
		return nil, domain.ErrTokenInvalid
	}

	user, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownSubject
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

// Authorize passes the identity through when its role is in allowed.
func (g *Guard) Authorize(user *domain.User, allowed ...domain.Role) (*domain.User, error) {
	if user == nil || !user.Role.Valid() {
		return nil, domain.ErrInsufficientPrivilege
	}
	for _, role := range allowed {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, domain.ErrInsufficientPrivilege
}

// AuthenticateAndAuthorize runs both checks in order.
func (g *Guard) AuthenticateAndAuthorize(ctx context.Context, authorization string, allowed ...domain.Role) (*domain.User, error) {
	user, err := g.Authenticate(ctx, authorization)
	if err != nil {
		return nil, err
	}
	return g.Authorize(user, allowed...)
}
