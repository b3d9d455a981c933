package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port string

	DBURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	TokenIssuer        string
	TokenAudience      string
	AccessExpiryMin    int
	RefreshExpiryMin   int

	CookieSecure bool

	MaxFailedLogins   int
	LockDurationMin   int
	BruteWindowHours  int
	MaxLockoutStrikes int

	RateLimitBackend   string // "memory" or "redis"
	RedisAddr          string
	RateLimitWindowSec int
	RateLimitPerIP     int
	RateLimitPerUser   int
	RateLimitPerAgent  int
	RateLimitGlobal    int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBURL: mustGetEnv("DB_URL"),

		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		TokenIssuer:        getEnv("TOKEN_ISSUER", "session-service"),
		TokenAudience:      getEnv("TOKEN_AUDIENCE", "back-office"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),

		CookieSecure: getEnvAsBool("COOKIE_SECURE", true),

		MaxFailedLogins:   getEnvAsInt("MAX_FAILED_LOGINS", 7),
		LockDurationMin:   getEnvAsInt("LOCK_DURATION_MIN", 15),
		BruteWindowHours:  getEnvAsInt("BRUTE_WINDOW_HOURS", 24),
		MaxLockoutStrikes: getEnvAsInt("MAX_LOCKOUT_STRIKES", 3),

		RateLimitBackend:   getEnv("RATE_LIMIT_BACKEND", "memory"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RateLimitWindowSec: getEnvAsInt("RATE_LIMIT_WINDOW_SEC", 60),
		RateLimitPerIP:     getEnvAsInt("RATE_LIMIT_PER_IP", 10),
		RateLimitPerUser:   getEnvAsInt("RATE_LIMIT_PER_USER", 5),
		RateLimitPerAgent:  getEnvAsInt("RATE_LIMIT_PER_AGENT", 30),
		RateLimitGlobal:    getEnvAsInt("RATE_LIMIT_GLOBAL", 300),
	}
}

func (c *Config) AccessExpiry() time.Duration {
	return time.Duration(c.AccessExpiryMin) * time.Minute
}

func (c *Config) RefreshExpiry() time.Duration {
	return time.Duration(c.RefreshExpiryMin) * time.Minute
}

func (c *Config) LockDuration() time.Duration {
	return time.Duration(c.LockDurationMin) * time.Minute
}

func (c *Config) BruteWindow() time.Duration {
	return time.Duration(c.BruteWindowHours) * time.Hour
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
