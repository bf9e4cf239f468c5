package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/slug"
)

// Input encapsulates the editable project attributes. Update treats it as
// a full replacement.
type Input struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Content     string   `json:"content" yaml:"content"`
	CoverImage  string   `json:"coverImage" yaml:"coverImage"`
	GithubURL   string   `json:"githubUrl" yaml:"githubUrl"`
	DemoURL     string   `json:"demoUrl" yaml:"demoUrl"`
	Category    string   `json:"category" yaml:"category"`
	Status      string   `json:"status" yaml:"status"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Tags        []string `json:"tags" yaml:"tags"`
	Order       int      `json:"order" yaml:"order"`
}

// Service orchestrates project management.
type Service struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
	now      func() time.Time
}

// New returns a project service.
func New(projects repository.ProjectRepository, logger *slog.Logger) Service {
	return Service{projects: projects, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid("title", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Invalid("description", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.Invalid("content", "is required")
	}
	return nil
}

func (in Input) apply(p *domain.Project) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.Content = in.Content
	p.CoverImage = strings.TrimSpace(in.CoverImage)
	p.GithubURL = strings.TrimSpace(in.GithubURL)
	p.DemoURL = strings.TrimSpace(in.DemoURL)
	p.Category = strings.TrimSpace(in.Category)
	p.Status = strings.ToLower(strings.TrimSpace(in.Status))
	p.Featured = in.Featured
	p.Tags = normalizeTags(in.Tags)
	p.Order = in.Order
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s Service) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	return slug.Unique(ctx, title, "project", func(ctx context.Context, candidate string) (bool, error) {
		return s.projects.ProjectSlugTaken(ctx, candidate, excludeID)
	}, s.now)
}

// Create validates input, derives a unique slug and stores the project.
func (s Service) Create(ctx context.Context, in Input) (*domain.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	project := &domain.Project{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.apply(project)
	var err error
	if project.Slug, err = s.uniqueSlug(ctx, project.Title, ""); err != nil {
		return nil, err
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.logger.Info("project created", "project_id", project.ID, "slug", project.Slug)
	return project, nil
}

// Update replaces a project. The slug is re-derived only when the title
// changes, and is checked against other projects.
func (s Service) Update(ctx context.Context, id string, in Input) (*domain.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	project, err := s.projects.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	titleChanged := strings.TrimSpace(in.Title) != project.Title
	in.apply(project)
	if titleChanged {
		if project.Slug, err = s.uniqueSlug(ctx, project.Title, project.ID); err != nil {
			return nil, err
		}
	}
	project.UpdatedAt = s.now()
	if err := s.projects.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	s.logger.Info("project updated", "project_id", project.ID, "slug", project.Slug)
	return project, nil
}

// Get fetches a project by id.
func (s Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetProjectByID(ctx, id)
}

// GetBySlug fetches a project by slug.
func (s Service) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.projects.GetProjectBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// List returns projects matching q. A "featured" status selects featured
// projects; any other status compares against the project's own status.
func (s Service) List(ctx context.Context, q listing.Query) (listing.Page[domain.Project], error) {
	items, err := s.projects.ListProjects(ctx)
	if err != nil {
		return listing.Page[domain.Project]{}, fmt.Errorf("list projects: %w", err)
	}
	featuredOnly := strings.EqualFold(q.Status, "featured")
	if featuredOnly {
		q.Status = ""
		filtered := items[:0]
		for _, p := range items {
			if p.Featured {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}
	return listing.Apply(items, q, func(p domain.Project) listing.Fields {
		return listing.Fields{
			Title:     p.Title,
			Category:  p.Category,
			Status:    p.Status,
			Tags:      p.Tags,
			Text:      []string{p.Description},
			Order:     p.Order,
			CreatedAt: p.CreatedAt,
			Likes:     p.Likes,
		}
	}), nil
}

// Delete removes a project and its comments.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}
