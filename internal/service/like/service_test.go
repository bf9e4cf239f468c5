package like

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

type capturePublisher struct{ events []ws.Event }

func (c *capturePublisher) Publish(_ string, event any) error {
	c.events = append(c.events, event.(ws.Event))
	return nil
}

func setup(t *testing.T) (Service, *capturePublisher) {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()
	_ = repo.CreateProject(ctx, &domain.Project{ID: "p1", Slug: "p1", Likes: 4})
	_ = repo.CreatePost(ctx, &domain.Post{ID: "b1", Slug: "b1", Published: true})
	_ = repo.CreatePost(ctx, &domain.Post{ID: "draft", Slug: "draft"})
	pub := &capturePublisher{}
	return New(repo, repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil))), pub
}

func TestLikeThenUnlikeRestoresCount(t *testing.T) {
	svc, pub := setup(t)
	ctx := context.Background()

	before, _ := svc.Count(ctx, domain.TargetProject, "p1")
	if n, err := svc.Like(ctx, domain.TargetProject, "p1"); err != nil || n != before+1 {
		t.Fatalf("Like: %d %v", n, err)
	}
	if n, err := svc.Unlike(ctx, domain.TargetProject, "p1"); err != nil || n != before {
		t.Fatalf("Unlike: %d %v", n, err)
	}
	if len(pub.events) != 2 || *pub.events[1].Likes != before {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestUnlikeNeverNegative(t *testing.T) {
	svc, _ := setup(t)
	n, err := svc.Apply(context.Background(), domain.TargetPost, "b1", "unlike")
	if err != nil || n != 0 {
		t.Fatalf("expected 0, got %d %v", n, err)
	}
}

func TestLikeErrors(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	if _, err := svc.Like(ctx, domain.TargetPost, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Like(ctx, domain.TargetPost, "draft"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("drafts cannot be liked, got %v", err)
	}
	if _, err := svc.Apply(ctx, domain.TargetPost, "b1", "love"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Count(ctx, domain.TargetProject, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
