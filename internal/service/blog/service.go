// Package blog manages posts: markdown rendering, excerpts, publication
// state and view counting.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/markdown"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/slug"
)

// Input carries the editable post fields. Update treats it as a full
// replacement.
type Input struct {
	Title      string   `json:"title" yaml:"title"`
	Excerpt    string   `json:"excerpt" yaml:"excerpt"`
	Content    string   `json:"content" yaml:"content"`
	CoverImage string   `json:"coverImage" yaml:"coverImage"`
	Category   string   `json:"category" yaml:"category"`
	Tags       []string `json:"tags" yaml:"tags"`
	Published  bool     `json:"published" yaml:"published"`
}

// Viewer describes who is reading. Admins see drafts and do not add views.
type Viewer struct {
	Admin bool
}

// Service orchestrates blog posts.
type Service struct {
	posts  repository.PostRepository
	logger *slog.Logger
	now    func() time.Time
}

// New returns a blog service.
func New(posts repository.PostRepository, logger *slog.Logger) Service {
	return Service{posts: posts, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.Invalid("content", "is required")
	}
	return nil
}

func (s Service) apply(in Input, p *domain.Post) {
	p.Title = strings.TrimSpace(in.Title)
	p.Content = in.Content
	p.Excerpt = strings.TrimSpace(in.Excerpt)
	if p.Excerpt == "" {
		p.Excerpt = markdown.Excerpt(in.Content, markdown.DefaultExcerptLength)
	}
	p.CoverImage = strings.TrimSpace(in.CoverImage)
	p.Category = strings.TrimSpace(in.Category)
	p.Tags = normalizeTags(in.Tags)
	p.ReadingTime = markdown.ReadingTime(in.Content)
	p.Published = in.Published
	if p.Published && p.PublishedAt == nil {
		at := s.now()
		p.PublishedAt = &at
	}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s Service) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	return slug.Unique(ctx, title, "post", func(ctx context.Context, candidate string) (bool, error) {
		return s.posts.PostSlugTaken(ctx, candidate, excludeID)
	}, s.now)
}

// Create validates input, derives a unique slug and stores the post.
func (s Service) Create(ctx context.Context, in Input) (*domain.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	post := &domain.Post{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	s.apply(in, post)
	var err error
	if post.Slug, err = s.uniqueSlug(ctx, post.Title, ""); err != nil {
		return nil, err
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created", "post_id", post.ID, "slug", post.Slug, "published", post.Published)
	return post, nil
}

// Update replaces a post. The slug follows title changes; publishedAt is
// kept from the first publication.
func (s Service) Update(ctx context.Context, id string, in Input) (*domain.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	titleChanged := strings.TrimSpace(in.Title) != post.Title
	s.apply(in, post)
	if titleChanged {
		if post.Slug, err = s.uniqueSlug(ctx, post.Title, post.ID); err != nil {
			return nil, err
		}
	}
	post.UpdatedAt = s.now()
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.logger.Info("post updated", "post_id", post.ID, "slug", post.Slug, "published", post.Published)
	return post, nil
}

func (s Service) visible(post *domain.Post, v Viewer) error {
	if !post.Published && !v.Admin {
		return repository.ErrNotFound
	}
	return nil
}

func render(post *domain.Post) error {
	html, err := markdown.Render(post.Content)
	if err != nil {
		return err
	}
	post.ContentHTML = html
	return nil
}

// Get fetches a post by id with rendered HTML.
func (s Service) Get(ctx context.Context, id string, v Viewer) (*domain.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.visible(post, v); err != nil {
		return nil, err
	}
	if err := render(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug fetches a post for reading: HTML is rendered and, for public
// readers, the view counter is incremented.
func (s Service) GetBySlug(ctx context.Context, slug string, v Viewer) (*domain.Post, error) {
	post, err := s.posts.GetPostBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if err := s.visible(post, v); err != nil {
		return nil, err
	}
	if !v.Admin {
		views, err := s.posts.IncrementPostViews(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("count view: %w", err)
		}
		post.Views = views
	}
	if err := render(post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns posts matching q. Drafts are dropped for public viewers.
func (s Service) List(ctx context.Context, q listing.Query, v Viewer) (listing.Page[domain.Post], error) {
	items, err := s.posts.ListPosts(ctx)
	if err != nil {
		return listing.Page[domain.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	if !v.Admin {
		published := items[:0]
		for _, p := range items {
			if p.Published {
				published = append(published, p)
			}
		}
		items = published
	}
	return listing.Apply(items, q, func(p domain.Post) listing.Fields {
		created := p.CreatedAt
		if p.PublishedAt != nil {
			created = *p.PublishedAt
		}
		return listing.Fields{
			Title:     p.Title,
			Category:  p.Category,
			Status:    p.Status(),
			Tags:      p.Tags,
			Text:      []string{p.Excerpt, p.Content},
			CreatedAt: created,
			Likes:     p.Likes,
			Views:     p.Views,
		}
	}), nil
}

// Delete removes a post and its comments.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", "post_id", id)
	return nil
}
