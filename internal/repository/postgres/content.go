package postgres

import (
	"context"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

const projectColumns = `id, slug, title, description, content, cover_image, github_url, demo_url, category, status,
	featured, tags, sort_order, likes, created_at, updated_at`

func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.Content, &p.CoverImage, &p.GithubURL,
		&p.DemoURL, &p.Category, &p.Status, &p.Featured, &p.Tags, &p.Order, &p.Likes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// CreateProject inserts a project.
func (r *Repository) CreateProject(ctx context.Context, p *domain.Project) error {
	const query = `INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Slug, p.Title, p.Description, p.Content, p.CoverImage, p.GithubURL,
		p.DemoURL, p.Category, p.Status, p.Featured, nonNil(p.Tags), p.Order, p.Likes, p.CreatedAt, p.UpdatedAt)
	return mapError(err)
}

// UpdateProject replaces a project's editable fields. The like counter is untouched.
func (r *Repository) UpdateProject(ctx context.Context, p *domain.Project) error {
	const query = `UPDATE projects SET slug = $2, title = $3, description = $4, content = $5, cover_image = $6,
			github_url = $7, demo_url = $8, category = $9, status = $10, featured = $11, tags = $12,
			sort_order = $13, updated_at = $14
		WHERE id = $1`
	return r.execOne(ctx, query, p.ID, p.Slug, p.Title, p.Description, p.Content, p.CoverImage, p.GithubURL,
		p.DemoURL, p.Category, p.Status, p.Featured, nonNil(p.Tags), p.Order, p.UpdatedAt)
}

// DeleteProject removes a project and, by cascade, its comments.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM projects WHERE id = $1`, id)
}

// GetProjectByID fetches a project.
func (r *Repository) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// GetProjectBySlug fetches a project by slug.
func (r *Repository) GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = $1`, slug))
}

// ListProjects returns all projects in display order.
func (r *Repository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// ProjectSlugTaken reports whether another project already uses slug.
func (r *Repository) ProjectSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1 AND id::text <> $2)`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, mapError(err)
	}
	return taken, nil
}

// AddProjectLikes adjusts the like counter and returns the new value.
func (r *Repository) AddProjectLikes(ctx context.Context, id string, delta int) (int, error) {
	const query = `UPDATE projects SET likes = GREATEST(likes + $2, 0) WHERE id = $1 RETURNING likes`
	var likes int
	if err := r.pool.QueryRow(ctx, query, id, delta).Scan(&likes); err != nil {
		return 0, mapError(err)
	}
	return likes, nil
}

const postColumns = `id, slug, title, excerpt, content, cover_image, category, tags, published, published_at,
	reading_time, views, likes, created_at, updated_at`

func scanPost(row scanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage, &p.Category, &p.Tags,
		&p.Published, &p.PublishedAt, &p.ReadingTime, &p.Views, &p.Likes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// CreatePost inserts a blog post.
func (r *Repository) CreatePost(ctx context.Context, p *domain.Post) error {
	const query = `INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.CoverImage, p.Category,
		nonNil(p.Tags), p.Published, p.PublishedAt, p.ReadingTime, p.Views, p.Likes, p.CreatedAt, p.UpdatedAt)
	return mapError(err)
}

// UpdatePost replaces a post's editable fields. Counters are untouched.
func (r *Repository) UpdatePost(ctx context.Context, p *domain.Post) error {
	const query = `UPDATE posts SET slug = $2, title = $3, excerpt = $4, content = $5, cover_image = $6,
			category = $7, tags = $8, published = $9, published_at = $10, reading_time = $11, updated_at = $12
		WHERE id = $1`
	return r.execOne(ctx, query, p.ID, p.Slug, p.Title, p.Excerpt, p.Content, p.CoverImage, p.Category,
		nonNil(p.Tags), p.Published, p.PublishedAt, p.ReadingTime, p.UpdatedAt)
}

// DeletePost removes a post and, by cascade, its comments.
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM posts WHERE id = $1`, id)
}

// GetPostByID fetches a post.
func (r *Repository) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

// GetPostBySlug fetches a post by slug.
func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug))
}

// ListPosts returns every post, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY COALESCE(published_at, created_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// PostSlugTaken reports whether another post already uses slug.
func (r *Repository) PostSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id::text <> $2)`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, mapError(err)
	}
	return taken, nil
}

// AddPostLikes adjusts the like counter and returns the new value.
func (r *Repository) AddPostLikes(ctx context.Context, id string, delta int) (int, error) {
	const query = `UPDATE posts SET likes = GREATEST(likes + $2, 0) WHERE id = $1 RETURNING likes`
	var likes int
	if err := r.pool.QueryRow(ctx, query, id, delta).Scan(&likes); err != nil {
		return 0, mapError(err)
	}
	return likes, nil
}

// IncrementPostViews bumps the view counter and returns the new value.
func (r *Repository) IncrementPostViews(ctx context.Context, id string) (int, error) {
	var views int
	if err := r.pool.QueryRow(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views); err != nil {
		return 0, mapError(err)
	}
	return views, nil
}
