package blog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

var (
	public = Viewer{}
	admin  = Viewer{Admin: true}
)

func newService() (Service, *time.Time) {
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestCreateDerivesExcerptAndReadingTime(t *testing.T) {
	svc, _ := newService()
	post, err := svc.Create(context.Background(), Input{
		Title:   "Hello, World",
		Content: "# Hello\n\nThis is **my** first post.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Slug != "hello-world" {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
	if post.Excerpt != "Hello This is my first post." {
		t.Fatalf("unexpected excerpt %q", post.Excerpt)
	}
	if post.ReadingTime != 1 || post.Published || post.PublishedAt != nil {
		t.Fatalf("unexpected post %+v", post)
	}
	if _, err := svc.Create(context.Background(), Input{Title: "x"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing content, got %v", err)
	}
}

func TestPublishedAtSetOnFirstPublish(t *testing.T) {
	svc, clock := newService()
	ctx := context.Background()
	post, _ := svc.Create(ctx, Input{Title: "Draft", Content: "body"})

	first := *clock
	published, err := svc.Update(ctx, post.ID, Input{Title: "Draft", Content: "body", Published: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if published.PublishedAt == nil || !published.PublishedAt.Equal(first) {
		t.Fatalf("expected publishedAt %v, got %v", first, published.PublishedAt)
	}

	*clock = clock.Add(24 * time.Hour)
	again, _ := svc.Update(ctx, post.ID, Input{Title: "Draft", Content: "edited", Published: true})
	if !again.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt must not move on later edits, got %v", again.PublishedAt)
	}
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	draft, _ := svc.Create(ctx, Input{Title: "Secret", Content: "wip"})
	_, _ = svc.Create(ctx, Input{Title: "Live", Content: "done", Published: true})

	if _, err := svc.GetBySlug(ctx, draft.Slug, public); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected draft hidden, got %v", err)
	}
	if _, err := svc.Get(ctx, draft.ID, admin); err != nil {
		t.Fatalf("admin should read drafts: %v", err)
	}

	page, _ := svc.List(ctx, listing.Query{}, public)
	if page.Total != 1 || page.Items[0].Title != "Live" {
		t.Fatalf("unexpected public list %+v", page.Items)
	}
	page, _ = svc.List(ctx, listing.Query{Status: "draft"}, admin)
	if page.Total != 1 || page.Items[0].Title != "Secret" {
		t.Fatalf("unexpected admin draft list %+v", page.Items)
	}
}

func TestGetBySlugRendersAndCountsViews(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	post, _ := svc.Create(ctx, Input{Title: "Markdown", Content: "Some *emphasis*.", Published: true})

	got, err := svc.GetBySlug(ctx, post.Slug, public)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if !strings.Contains(got.ContentHTML, "<em>emphasis</em>") {
		t.Fatalf("expected rendered html, got %q", got.ContentHTML)
	}
	if got.Views != 1 {
		t.Fatalf("expected 1 view, got %d", got.Views)
	}
	got, _ = svc.GetBySlug(ctx, post.Slug, admin)
	if got.Views != 1 {
		t.Fatalf("admin reads must not count, got %d", got.Views)
	}
	got, _ = svc.GetBySlug(ctx, strings.ToUpper(post.Slug), public)
	if got.Views != 2 {
		t.Fatalf("expected 2 views, got %d", got.Views)
	}
}
