package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttempts counts failed logins per account in Redis.
// Key format: login_attempts:<lowercased email>
type LoginAttempts struct {
	client *redis.Client
	window time.Duration
}

// NewLoginAttempts returns a counter whose keys expire window after the first failure.
func NewLoginAttempts(r *Redis, window time.Duration) *LoginAttempts {
	return &LoginAttempts{client: r.Client, window: window}
}

// Failures returns the current failure count for email.
func (l *LoginAttempts) Failures(ctx context.Context, email string) (int64, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("login attempts get: %w", err)
	}
	return n, nil
}

// RecordFailure increments the failure count, starting the window on the first failure.
// INCR and EXPIRE NX run in one MULTI so a counter never outlives its window.
func (l *LoginAttempts) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := l.key(email)
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("login attempts incr: %w", err)
	}
	return incr.Val(), nil
}

// Reset clears the failure count for email.
func (l *LoginAttempts) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginAttempts) key(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}
