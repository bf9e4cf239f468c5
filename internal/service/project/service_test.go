package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

func newService(ts int64) Service {
	svc := New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.UnixMilli(ts).UTC() }
	return svc
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newService(1)
	cases := []Input{
		{Description: "d", Content: "c"},
		{Title: "t", Content: "c"},
		{Title: "t", Description: "d"},
		{Title: "  ", Description: "d", Content: "c"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("Create(%+v) expected validation error, got %v", in, err)
		}
	}
}

func TestCreateDisambiguatesSlug(t *testing.T) {
	svc := newService(1700000000000)
	ctx := context.Background()
	in := Input{Title: "My Cool Project!", Description: "d", Content: "c"}

	first, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Slug != "my-cool-project" {
		t.Fatalf("expected my-cool-project, got %q", first.Slug)
	}
	second, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Slug != "my-cool-project-1700000000000" {
		t.Fatalf("unexpected disambiguated slug %q", second.Slug)
	}
}

func TestSlugsAreURLSafe(t *testing.T) {
	svc := newService(1)
	pattern := regexp.MustCompile(`^[a-z0-9-]+$`)
	for _, title := range []string{"C++ & Rust: a <comparison>", "Ünïcode Ünïcorn", "100% done?!", "tabs\tand\nlines"} {
		p, err := svc.Create(context.Background(), Input{Title: title, Description: "d", Content: "c"})
		if err != nil {
			t.Fatalf("Create(%q): %v", title, err)
		}
		if !pattern.MatchString(p.Slug) {
			t.Errorf("slug %q for %q is not url safe", p.Slug, title)
		}
	}
}

func TestUpdateRederivesSlugOnlyOnTitleChange(t *testing.T) {
	svc := newService(42)
	ctx := context.Background()
	p, _ := svc.Create(ctx, Input{Title: "Alpha", Description: "d", Content: "c"})
	_, _ = svc.Create(ctx, Input{Title: "Beta", Description: "d", Content: "c"})

	same, err := svc.Update(ctx, p.ID, Input{Title: "Alpha", Description: "new", Content: "c", Tags: []string{"go", "Go", " "}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if same.Slug != "alpha" || same.Description != "new" || len(same.Tags) != 1 {
		t.Fatalf("unexpected update result %+v", same)
	}

	renamed, err := svc.Update(ctx, p.ID, Input{Title: "Beta", Description: "d", Content: "c"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renamed.Slug != "beta-42" {
		t.Fatalf("expected collision with other project to disambiguate, got %q", renamed.Slug)
	}

	back, err := svc.Update(ctx, p.ID, Input{Title: "Beta!", Description: "d", Content: "c"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if back.Slug != "beta-42" {
		t.Fatalf("expected beta-42 to be kept, got %q", back.Slug)
	}
}

func TestUpdateMissingProject(t *testing.T) {
	svc := newService(1)
	if _, err := svc.Update(context.Background(), "nope", Input{Title: "t", Description: "d", Content: "c"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := newService(1)
	ctx := context.Background()
	p, _ := svc.Create(ctx, Input{Title: "Gone", Description: "d", Content: "c"})
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListFeatured(t *testing.T) {
	svc := newService(1)
	ctx := context.Background()
	_, _ = svc.Create(ctx, Input{Title: "One", Description: "d", Content: "c", Featured: true})
	_, _ = svc.Create(ctx, Input{Title: "Two", Description: "d", Content: "c"})

	page, err := svc.List(ctx, listing.Query{Status: "featured"})
	if err != nil || page.Total != 1 || page.Items[0].Title != "One" {
		t.Fatalf("unexpected featured list %+v err=%v", page, err)
	}
}

func TestSlugDropsPunctuationInsideWords(t *testing.T) {
	svc := newService(1)
	cases := map[string]string{
		"Shishir's Portfolio": "shishirs-portfolio",
		"Node.js API":         "nodejs-api",
	}
	for title, want := range cases {
		p, err := svc.Create(context.Background(), Input{Title: title, Description: "d", Content: "c"})
		if err != nil {
			t.Fatalf("Create(%q): %v", title, err)
		}
		if p.Slug != want {
			t.Errorf("slug for %q = %q, want %q", title, p.Slug, want)
		}
	}
}
