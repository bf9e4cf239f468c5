package comment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

type capturePublisher struct {
	topics []string
	events []any
}

func (c *capturePublisher) Publish(topic string, event any) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

func setup(t *testing.T) (Service, *memory.Repository, *capturePublisher) {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()
	if err := repo.CreateProject(ctx, &domain.Project{ID: "p1", Slug: "p1"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreatePost(ctx, &domain.Post{ID: "b1", Slug: "b1", Published: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreatePost(ctx, &domain.Post{ID: "draft", Slug: "draft"}); err != nil {
		t.Fatal(err)
	}
	pub := &capturePublisher{}
	return New(repo, repo, repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, pub
}

func TestCreateValidates(t *testing.T) {
	svc, _, _ := setup(t)
	cases := []Input{
		{Author: "a", ProjectID: "p1"},
		{Content: "hi", ProjectID: "p1"},
		{Content: "hi", Author: "a"},
		{Content: "hi", Author: "a", ProjectID: "p1", PostID: "b1"},
		{Content: "hi", Author: "a", ProjectID: "p1", Email: "nope"},
		{Content: strings.Repeat("x", MaxContentLength+1), Author: "a", ProjectID: "p1"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateRequiresExistingTarget(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, Input{Content: "hi", Author: "a", ProjectID: "missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, Input{Content: "hi", Author: "a", PostID: "draft"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("drafts must not accept comments, got %v", err)
	}
}

func TestCreateBroadcastsWithoutEmail(t *testing.T) {
	svc, _, pub := setup(t)
	c, err := svc.Create(context.Background(), Input{Content: "Nice!", Author: "Ann", Email: "ann@example.com", PostID: "b1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(pub.topics) != 1 || pub.topics[0] != "post:b1" {
		t.Fatalf("unexpected topics %v", pub.topics)
	}
	ev := pub.events[0].(ws.Event)
	if ev.Event != "comment" || ev.Comment.ID != c.ID || ev.Comment.Email != "" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestListHidesEmailFromPublic(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	_, _ = svc.Create(ctx, Input{Content: "one", Author: "Ann", Email: "ann@example.com", ProjectID: "p1"})
	_, _ = svc.Create(ctx, Input{Content: "two", Author: "Bob", PostID: "b1"})

	items, err := svc.List(ctx, repository.CommentFilter{ProjectID: "p1"}, false)
	if err != nil || len(items) != 1 || items[0].Email != "" {
		t.Fatalf("unexpected public list %+v err=%v", items, err)
	}
	items, _ = svc.List(ctx, repository.CommentFilter{ProjectID: "p1"}, true)
	if items[0].Email != "ann@example.com" {
		t.Fatalf("admin should see email, got %+v", items[0])
	}
	if err := svc.Delete(ctx, items[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, items[0].ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
