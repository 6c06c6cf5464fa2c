package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY": "s3cr3t",
	}))
	require.NoError(t, err)

	require.Equal(t, "pizza-delivery-api", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, "HS256", cfg.Auth.JWTAlgorithm)
	require.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL())
	require.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL())
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	require.Equal(t, 15*time.Minute, cfg.Auth.LoginLockout())
	require.False(t, cfg.Auth.HideUnknownAccounts)
	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	require.True(t, cfg.Postgres.RunMigrations)
	require.Empty(t, cfg.Postgres.DSN)
	require.Equal(t, 2, cfg.Notification.Workers)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY":            "s3cr3t",
		"JWT_ALGORITHM":             "HS512",
		"JWT_ACCESS_TOKEN_EXPIRES":  "5",
		"JWT_REFRESH_TOKEN_EXPIRES": "60",
		"DATABASE_URL":              "postgres://pizza@localhost/pizza",
		"APP_PORT":                  "9090",
	}))
	require.NoError(t, err)

	require.Equal(t, "HS512", cfg.Auth.JWTAlgorithm)
	require.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL())
	require.Equal(t, time.Hour, cfg.Auth.RefreshTTL())
	require.Equal(t, "postgres://pizza@localhost/pizza", cfg.Postgres.DSN)
	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoadFromRejectsInvalidAuthConfig(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"unsupported algorithm": {
			"JWT_SECRET_KEY": "s3cr3t",
			"JWT_ALGORITHM":  "none",
		},
		"refresh not longer than access": {
			"JWT_SECRET_KEY":            "s3cr3t",
			"JWT_ACCESS_TOKEN_EXPIRES":  "60",
			"JWT_REFRESH_TOKEN_EXPIRES": "60",
		},
		"non-positive access ttl": {
			"JWT_SECRET_KEY":           "s3cr3t",
			"JWT_ACCESS_TOKEN_EXPIRES": "0",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			require.Error(t, err)
		})
	}
}
