package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

// TokenConfig carries the process-wide signing settings.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager builds a new manager. Only HMAC algorithms are accepted.
func NewTokenManager(cfg TokenConfig, opts ...TokenOption) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}

	tm := &TokenManager{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload. The registered subject holds the user's email.
type Claims struct {
	UserID string           `json:"id"`
	Role   domain.Role      `json:"role"`
	Type   domain.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Email returns the subject email.
func (c *Claims) Email() string {
	return c.Subject
}

// IssueAccess signs an access token with the default access lifetime.
func (tm *TokenManager) IssueAccess(subject domain.Subject) (string, time.Time, error) {
	return tm.issue(subject, domain.TokenTypeAccess, tm.accessTTL)
}

// IssueAccessWithTTL signs an access token that expires ttl from now.
func (tm *TokenManager) IssueAccessWithTTL(subject domain.Subject, ttl time.Duration) (string, time.Time, error) {
	return tm.issue(subject, domain.TokenTypeAccess, ttl)
}

// IssueRefresh signs a refresh token with the default refresh lifetime.
func (tm *TokenManager) IssueRefresh(subject domain.Subject) (string, time.Time, error) {
	return tm.issue(subject, domain.TokenTypeRefresh, tm.refreshTTL)
}

// IssueRefreshWithTTL signs a refresh token that expires ttl from now.
func (tm *TokenManager) IssueRefreshWithTTL(subject domain.Subject, ttl time.Duration) (string, time.Time, error) {
	return tm.issue(subject, domain.TokenTypeRefresh, ttl)
}

// IssuePair signs an access and a refresh token for the same subject.
func (tm *TokenManager) IssuePair(subject domain.Subject) (*domain.TokenPair, error) {
	access, accessExp, err := tm.IssueAccess(subject)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := tm.IssueRefresh(subject)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (tm *TokenManager) issue(subject domain.Subject, tokenType domain.TokenType, ttl time.Duration) (string, time.Time, error) {
	if !subject.Role.Valid() {
		return "", time.Time{}, domain.ErrUnknownRole
	}
	if subject.UserID == "" {
		return "", time.Time{}, errors.New("token subject id is required")
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		UserID: subject.UserID,
		Role:   subject.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.Email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(tm.method, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and returns the claims.
// Failures are domain.ErrTokenExpired or domain.ErrTokenInvalid. The token type is
// returned to the caller and not checked here.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Type != domain.TokenTypeAccess && claims.Type != domain.TokenTypeRefresh {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
