package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/config"
)

func newService() (Service, *memory.Repository) {
	repo := memory.New()
	cfg := config.APIConfig{JWTSecret: "test-secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg), repo
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin@Example.com", "correct-horse", "Admin")
	if err != nil || !created {
		t.Fatalf("first EnsureAdmin: created=%v err=%v", created, err)
	}
	created, err = svc.EnsureAdmin(ctx, "admin@example.com", "another-pass", "Admin")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin: created=%v err=%v", created, err)
	}
	if _, err := svc.EnsureAdmin(ctx, "new@example.com", "short", ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func TestLoginAndAuthorize(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	if _, err := svc.EnsureAdmin(ctx, "admin@example.com", "correct-horse", "Admin"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	if _, _, err := svc.Login(ctx, "admin@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	user, tokens, err := svc.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	got, claims, err := svc.Authorize(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if got.ID != user.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user %+v claims %+v", got, claims)
	}

	if _, _, err := svc.Authorize(ctx, tokens.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("refresh token must not authorize requests, got %v", err)
	}
	if _, _, err := svc.Authorize(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.EnsureAdmin(ctx, "admin@example.com", "correct-horse", "Admin")
	_, tokens, err := svc.Login(ctx, "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, _, err := svc.Authorize(ctx, fresh.AccessToken); err != nil {
		t.Fatalf("refreshed access token rejected: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, tokens.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestAuthorizeRejectsNonAdmin(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	_ = repo.CreateUser(ctx, &domain.User{ID: "u1", Email: "reader@example.com", Role: "reader"})
	tokens, err := svc.issueTokens(&domain.User{ID: "u1", Role: "reader"})
	if err != nil {
		t.Fatalf("issueTokens: %v", err)
	}
	if _, _, err := svc.Authorize(ctx, tokens.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
