package feedback

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

func newService(t *testing.T, repo repository.FeedbackRepository, key string) Service {
	t.Helper()
	svc, err := New(repo, key, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestSubmitSealsEmail(t *testing.T) {
	repo := memory.New()
	svc := newService(t, repo, "test-key")
	ctx := context.Background()

	fb, err := svc.Submit(ctx, Input{Name: "Ann", Email: "Ann <ann@example.com>", Message: "Hello", Rating: 5})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Email != "ann@example.com" {
		t.Fatalf("expected normalized address, got %q", fb.Email)
	}
	if bytes.Contains(fb.EmailSealed, []byte("ann@example.com")) {
		t.Fatalf("email stored in clear")
	}

	items, err := svc.List(ctx, false)
	if err != nil || len(items) != 1 || items[0].Email != "ann@example.com" {
		t.Fatalf("unexpected list %+v err=%v", items, err)
	}

	other := newService(t, repo, "rotated-key")
	items, err = other.List(ctx, false)
	if err != nil || len(items) != 1 || items[0].Email != "" {
		t.Fatalf("expected unreadable email to be blanked, got %+v err=%v", items, err)
	}
}

func TestSubmitValidates(t *testing.T) {
	svc := newService(t, memory.New(), "k")
	cases := []Input{
		{Email: "a@b.co", Message: "m"},
		{Name: "n", Message: "m"},
		{Name: "n", Email: "bad", Message: "m"},
		{Name: "n", Email: "a@b.co"},
		{Name: "n", Email: "a@b.co", Message: "m", Rating: 6},
	}
	for i, in := range cases {
		if _, err := svc.Submit(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestMarkReadAndDelete(t *testing.T) {
	svc := newService(t, memory.New(), "k")
	ctx := context.Background()
	fb, _ := svc.Submit(ctx, Input{Name: "n", Email: "a@b.co", Message: "m"})

	if err := svc.MarkRead(ctx, fb.ID, true); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	unread, _ := svc.List(ctx, true)
	if len(unread) != 0 {
		t.Fatalf("expected no unread feedback, got %d", len(unread))
	}
	if err := svc.Delete(ctx, fb.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.MarkRead(ctx, fb.ID, true); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
