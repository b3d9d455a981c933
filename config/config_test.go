package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/sessions")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "session-service", cfg.TokenIssuer)
	assert.Equal(t, "back-office", cfg.TokenAudience)
	assert.True(t, cfg.CookieSecure)

	assert.Equal(t, 7, cfg.MaxFailedLogins)
	assert.Equal(t, 3, cfg.MaxLockoutStrikes)
	assert.Equal(t, "memory", cfg.RateLimitBackend)
	assert.Equal(t, 10, cfg.RateLimitPerIP)
	assert.Equal(t, 5, cfg.RateLimitPerUser)
	assert.Equal(t, 30, cfg.RateLimitPerAgent)
	assert.Equal(t, 300, cfg.RateLimitGlobal)

	assert.Equal(t, 15*time.Minute, cfg.AccessExpiry())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshExpiry())
	assert.Equal(t, 15*time.Minute, cfg.LockDuration())
	assert.Equal(t, 24*time.Hour, cfg.BruteWindow())
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5")
	t.Setenv("MAX_FAILED_LOGINS", "10")
	t.Setenv("RATE_LIMIT_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("COOKIE_SECURE", "false")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5*time.Minute, cfg.AccessExpiry())
	assert.Equal(t, 10, cfg.MaxFailedLogins)
	assert.Equal(t, "redis", cfg.RateLimitBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_FAILED_LOGINS", "not-a-number")
	t.Setenv("COOKIE_SECURE", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 7, cfg.MaxFailedLogins)
	assert.True(t, cfg.CookieSecure)
}
