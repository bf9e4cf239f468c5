package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shishir-py/personal-portfolio-sub000/internal/app/migrate"
	httpx "github.com/shishir-py/personal-portfolio-sub000/internal/http"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/postgres"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/auth"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/blog"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/comment"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/feedback"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/like"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/profile"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/resume"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/upload"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/visitor"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/config"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/logger"
)

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("api", logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	authSvc := auth.New(store, log, cfg)
	if cfg.AdminPassword != "" {
		created, err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		if err != nil {
			log.Error("failed to bootstrap admin", "error", err)
			os.Exit(1)
		}
		if created {
			log.Info("admin account created", "email", cfg.AdminEmail)
		}
	} else {
		log.Warn("ADMIN_PASSWORD not set; skipping admin bootstrap")
	}

	feedbackSvc, err := feedback.New(store, cfg.DataEncryptionKey, log)
	if err != nil {
		log.Error("failed to configure feedback", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	services := httpx.Services{
		Auth:     authSvc,
		Profile:  profile.New(store, log),
		Resume:   resume.New(store, log),
		Projects: project.New(store, log),
		Blog:     blog.New(store, log),
		Comments: comment.New(store, store, store, hub, log),
		Likes:    like.New(store, store, hub, log),
		Feedback: feedbackSvc,
		Visitors: visitor.New(store, cfg.VisitorSalt, log),
		Uploads:  upload.New(cfg.UploadDir, cfg.PublicBaseURL, cfg.UploadMaxBytes, log),
		Hub:      hub,
	}

	limiter := httpx.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(cfg.RateLimitRedisAddr); addr != "" {
		redisLimiter, err := httpx.NewRedisRateLimiter(addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter.Close()
			limiter = redisLimiter
		}
	}

	router := httpx.NewRouter(log, services, httpx.Options{
		Limiter:         limiter,
		DBHealth:        store.Ping,
		EngagementLimit: cfg.RateLimitPerMinute,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})
	defer router.Close()

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr, "env", cfg.Environment)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

// openStore connects to PostgreSQL and applies migrations, or falls back to
// the in-memory repository when DATABASE_URL is empty.
func openStore(ctx context.Context, cfg config.APIConfig, log *slog.Logger) (repository.Store, func(), error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Warn("DATABASE_URL not set; using in-memory store, data will not persist")
		return memory.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	runner, err := migrate.New(pool, cfg.MigrationsDir, log)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := runner.Ping(ctx); err != nil {
		runner.Close()
		return nil, nil, err
	}
	if err := runner.Ensure(ctx); err != nil {
		runner.Close()
		return nil, nil, err
	}
	return postgres.New(pool), runner.Close, nil
}
