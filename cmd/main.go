package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/adminkit/session-service/config"
	"github.com/adminkit/session-service/db"
	"github.com/adminkit/session-service/internal/audit"
	"github.com/adminkit/session-service/internal/auth/handler"
	repo "github.com/adminkit/session-service/internal/auth/repository/postgres"
	"github.com/adminkit/session-service/internal/auth/service"
	"github.com/adminkit/session-service/internal/logging"
	"github.com/adminkit/session-service/internal/ratelimit"
)

func main() {
	cfg := config.Load()
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error(ctx, "database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var store ratelimit.Limiter
	if cfg.RateLimitBackend == "redis" {
		store = ratelimit.NewRedisLimiter(
			redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			cfg.RateLimitWindow())
	} else {
		store = ratelimit.NewMemoryLimiter(cfg.RateLimitWindow())
	}
	limiter := ratelimit.NewComposite(store, ratelimit.Limits{
		Global:   cfg.RateLimitGlobal,
		PerIP:    cfg.RateLimitPerIP,
		PerUser:  cfg.RateLimitPerUser,
		PerAgent: cfg.RateLimitPerAgent,
	})

	writer := audit.NewWriter(pool, log)
	userRepo := repo.NewRepository(pool)
	tokenRepo := repo.NewTokenRepository(pool)

	tokenService := service.NewTokenService(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.TokenIssuer, cfg.TokenAudience,
		cfg.AccessExpiry(), cfg.RefreshExpiry(), cfg.CookieSecure)
	lockout := service.NewLockout(service.LockoutConfig{
		MaxFailedLogins:   cfg.MaxFailedLogins,
		LockDuration:      cfg.LockDuration(),
		BruteWindow:       cfg.BruteWindow(),
		MaxLockoutStrikes: cfg.MaxLockoutStrikes,
	})
	sessionService := service.NewSessionService(
		userRepo, tokenRepo, tokenService, limiter, lockout, writer, log)
	sessionHandler := handler.NewSessionHandler(sessionService, tokenService)

	app := fiber.New(fiber.Config{
		ErrorHandler: handler.NewErrorHandler(log),
	})
	app.Use(handler.RequestContext())
	handler.RegisterRoutes(app, sessionHandler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error(ctx, "server stopped", "error", err)
			os.Exit(1)
		}
	}()
	log.Info(ctx, "server started", "port", cfg.Port, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", "error", err)
	}
}
