package comment

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

// MaxContentLength bounds comment bodies, in runes.
const MaxContentLength = 2000

// Publisher pushes events to engagement stream subscribers.
type Publisher interface {
	Publish(topic string, event any) error
}

// Input is a new comment. Exactly one of ProjectID and PostID is set.
type Input struct {
	Content   string `json:"content"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	ProjectID string `json:"projectId"`
	PostID    string `json:"postId"`
}

// Service manages visitor comments.
type Service struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
	posts    repository.PostRepository
	events   Publisher
	logger   *slog.Logger
}

// New returns a comment service. events may be nil.
func New(comments repository.CommentRepository, projects repository.ProjectRepository, posts repository.PostRepository, events Publisher, logger *slog.Logger) Service {
	return Service{comments: comments, projects: projects, posts: posts, events: events, logger: logger}
}

func (in Input) validate() error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Invalid("content", "is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return domain.Invalid("content", fmt.Sprintf("must be at most %d characters", MaxContentLength))
	}
	if strings.TrimSpace(in.Author) == "" {
		return domain.Invalid("author", "is required")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.Invalid("email", "is not a valid address")
		}
	}
	hasProject := strings.TrimSpace(in.ProjectID) != ""
	hasPost := strings.TrimSpace(in.PostID) != ""
	if hasProject == hasPost {
		return domain.Invalid("target", "exactly one of projectId or postId is required")
	}
	return nil
}

func (s Service) ensureTarget(ctx context.Context, t domain.TargetType, id string) error {
	switch t {
	case domain.TargetProject:
		_, err := s.projects.GetProjectByID(ctx, id)
		return err
	default:
		post, err := s.posts.GetPostByID(ctx, id)
		if err != nil {
			return err
		}
		if !post.Published {
			return repository.ErrNotFound
		}
		return nil
	}
}

// Create stores a comment on an existing project or published post and
// announces it on the target's stream.
func (s Service) Create(ctx context.Context, in Input) (*domain.Comment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		ID:        uuid.NewString(),
		Content:   strings.TrimSpace(in.Content),
		Author:    strings.TrimSpace(in.Author),
		Email:     strings.TrimSpace(in.Email),
		ProjectID: strings.TrimSpace(in.ProjectID),
		PostID:    strings.TrimSpace(in.PostID),
		CreatedAt: time.Now().UTC(),
	}
	targetType, targetID := c.Target()
	if err := s.ensureTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.logger.Info("comment created", "comment_id", c.ID, "target", domain.Topic(targetType, targetID))
	if s.events != nil {
		public := *c
		public.Email = ""
		if err := s.events.Publish(domain.Topic(targetType, targetID), ws.CommentEvent(public)); err != nil {
			s.logger.Warn("comment broadcast failed", "comment_id", c.ID, "error", err)
		}
	}
	return c, nil
}

// List returns comments for the filter, newest first. Emails are only
// kept for admins.
func (s Service) List(ctx context.Context, filter repository.CommentFilter, admin bool) ([]domain.Comment, error) {
	items, err := s.comments.ListComments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if !admin {
		for i := range items {
			items[i].Email = ""
		}
	}
	return items, nil
}

// Delete removes a comment.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "comment_id", id)
	return nil
}
