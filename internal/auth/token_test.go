package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

var testSubject = domain.Subject{UserID: "u-1", Email: "alice@x.com", Role: domain.RoleUser}

func newTestTokenManager(t *testing.T, opts ...TokenOption) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(TokenConfig{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}, opts...)
	require.NoError(t, err)
	return tm
}

func TestTokenManagerIssueAndVerifyPair(t *testing.T) {
	tm := newTestTokenManager(t)

	pair, err := tm.IssuePair(testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := tm.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, domain.TokenTypeAccess, access.Type)
	require.Equal(t, "u-1", access.UserID)
	require.Equal(t, "alice@x.com", access.Email())
	require.Equal(t, domain.RoleUser, access.Role)

	refresh, err := tm.Verify(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, domain.TokenTypeRefresh, refresh.Type)
	require.Equal(t, "u-1", refresh.UserID)
}

func TestTokenManagerZeroTTLIsExpired(t *testing.T) {
	tm := newTestTokenManager(t)

	token, _, err := tm.IssueAccessWithTTL(testSubject, 0)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenManagerExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestTokenManager(t, WithClock(func() time.Time { return now }))

	token, exp, err := tm.IssueAccess(testSubject)
	require.NoError(t, err)
	require.Equal(t, now.Add(15*time.Minute), exp)

	_, err = tm.Verify(token)
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenManagerRejectsForeignSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := NewTokenManager(TokenConfig{Secret: "another-secret", Algorithm: "HS256"})
	require.NoError(t, err)

	token, _, err := other.IssueAccess(testSubject)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
	require.NotErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenManagerRejectsOtherAlgorithm(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := NewTokenManager(TokenConfig{Secret: "test-secret", Algorithm: "HS512"})
	require.NoError(t, err)

	token, _, err := other.IssueAccess(testSubject)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenManagerRejectsMalformedTokens(t *testing.T) {
	tm := newTestTokenManager(t)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(raw)
		require.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", raw)
	}
}

func TestTokenManagerRejectsUnknownRoleClaim(t *testing.T) {
	tm := newTestTokenManager(t)

	claims := &Claims{
		UserID: "u-1",
		Role:   domain.Role("superuser"),
		Type:   domain.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenManagerRejectsMissingExpiry(t *testing.T) {
	tm := newTestTokenManager(t)

	claims := &Claims{UserID: "u-1", Role: domain.RoleUser, Type: domain.TokenTypeAccess}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenManagerIssueRejectsUnknownRole(t *testing.T) {
	tm := newTestTokenManager(t)

	_, _, err := tm.IssueAccess(domain.Subject{UserID: "u-1", Role: "root"})
	require.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager(TokenConfig{Algorithm: "HS256"})
	require.Error(t, err)

	_, err = NewTokenManager(TokenConfig{Secret: "s", Algorithm: "RS256"})
	require.Error(t, err)

	_, err = NewTokenManager(TokenConfig{Secret: "s", Algorithm: "none"})
	require.Error(t, err)
}
