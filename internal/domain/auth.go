package domain

import "time"

// TokenType differentiates short-lived access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Subject is the identity data embedded into issued tokens.
type Subject struct {
	UserID string
	Email  string
	Role   Role
}

// SubjectOf builds token claims for a user.
func SubjectOf(user *User) Subject {
	return Subject{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// TokenPair is returned on successful login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
