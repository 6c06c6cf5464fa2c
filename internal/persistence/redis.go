package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-delivery/internal/config"
)

const redisPingTimeout = 3 * time.Second

var errRedisDisabled = errors.New("redis: client not configured")

// Redis backs the login throttle. The service keeps serving when it is down;
// login simply stops being throttled.
type Redis struct {
	Client *redis.Client
}

// NewRedis never fails: an unreachable server is only logged.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{Client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	fields := []zap.Field{zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB)}
	if err := r.Ping(pingCtx); err != nil {
		logger.Warn("redis unreachable; login throttling degraded", append(fields, zap.Error(err))...)
	} else {
		logger.Info("redis ready", fields...)
	}
	return r
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping backs the /health/ready redis check.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errRedisDisabled
	}
	return r.Client.Ping(ctx).Err()
}
