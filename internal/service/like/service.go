package like

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

// Actions accepted by Apply.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// Publisher pushes events to engagement stream subscribers.
type Publisher interface {
	Publish(topic string, event any) error
}

// Service adjusts like counters. It does not track who liked what; the
// client keeps that state.
type Service struct {
	projects repository.ProjectRepository
	posts    repository.PostRepository
	events   Publisher
	logger   *slog.Logger
}

// New returns a like service. events may be nil.
func New(projects repository.ProjectRepository, posts repository.PostRepository, events Publisher, logger *slog.Logger) Service {
	return Service{projects: projects, posts: posts, events: events, logger: logger}
}

// Count returns the current like count of a target.
func (s Service) Count(ctx context.Context, t domain.TargetType, id string) (int, error) {
	if strings.TrimSpace(id) == "" {
		return 0, domain.Invalid("id", "is required")
	}
	switch t {
	case domain.TargetProject:
		p, err := s.projects.GetProjectByID(ctx, id)
		if err != nil {
			return 0, err
		}
		return p.Likes, nil
	case domain.TargetPost:
		p, err := s.posts.GetPostByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if !p.Published {
			return 0, repository.ErrNotFound
		}
		return p.Likes, nil
	}
	return 0, domain.Invalid("type", "must be project or post")
}

// Like increments a target's counter.
func (s Service) Like(ctx context.Context, t domain.TargetType, id string) (int, error) {
	return s.add(ctx, t, id, 1)
}

// Unlike decrements a target's counter, never below zero.
func (s Service) Unlike(ctx context.Context, t domain.TargetType, id string) (int, error) {
	return s.add(ctx, t, id, -1)
}

// Apply dispatches on a like or unlike action.
func (s Service) Apply(ctx context.Context, t domain.TargetType, id, action string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "", ActionLike:
		return s.Like(ctx, t, id)
	case ActionUnlike:
		return s.Unlike(ctx, t, id)
	}
	return 0, domain.Invalid("action", "must be like or unlike")
}

func (s Service) add(ctx context.Context, t domain.TargetType, id string, delta int) (int, error) {
	if _, err := s.Count(ctx, t, id); err != nil {
		return 0, err
	}
	var (
		likes int
		err   error
	)
	if t == domain.TargetProject {
		likes, err = s.projects.AddProjectLikes(ctx, id, delta)
	} else {
		likes, err = s.posts.AddPostLikes(ctx, id, delta)
	}
	if err != nil {
		return 0, fmt.Errorf("update likes: %w", err)
	}
	s.logger.Debug("likes updated", "target", domain.Topic(t, id), "likes", likes)
	if s.events != nil {
		if err := s.events.Publish(domain.Topic(t, id), ws.LikeEvent(t, id, likes)); err != nil {
			s.logger.Warn("like broadcast failed", "target", domain.Topic(t, id), "error", err)
		}
	}
	return likes, nil
}
