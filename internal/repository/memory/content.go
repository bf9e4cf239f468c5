package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

func cloneProject(p domain.Project) domain.Project {
	p.Tags = cloneStrings(p.Tags)
	return p
}

func clonePost(p domain.Post) domain.Post {
	p.Tags = cloneStrings(p.Tags)
	if p.PublishedAt != nil {
		at := *p.PublishedAt
		p.PublishedAt = &at
	}
	return p
}

func clampAdd(value, delta int) int {
	return max(value+delta, 0)
}

// CreateProject inserts a project; slugs are unique.
func (r *Repository) CreateProject(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.projects {
		if existing.Slug == p.Slug {
			return repository.ErrConflict
		}
	}
	return insert(r.projects, p.ID, cloneProject(*p))
}

// UpdateProject replaces editable fields and keeps the like counter.
func (r *Repository) UpdateProject(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.projects {
		if id != p.ID && other.Slug == p.Slug {
			return repository.ErrConflict
		}
	}
	p.Likes = existing.Likes
	p.CreatedAt = existing.CreatedAt
	r.projects[p.ID] = cloneProject(*p)
	return nil
}

// DeleteProject removes a project and its comments.
func (r *Repository) DeleteProject(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := remove(r.projects, id); err != nil {
		return err
	}
	for cid, c := range r.comments {
		if c.ProjectID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

// GetProjectByID fetches a project.
func (r *Repository) GetProjectByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProject(p)
	return &p, nil
}

// GetProjectBySlug fetches a project by slug.
func (r *Repository) GetProjectBySlug(_ context.Context, slug string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.projects {
		if p.Slug == slug {
			p = cloneProject(p)
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListProjects returns projects by order, newest first on ties.
func (r *Repository) ListProjects(context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		items = append(items, cloneProject(p))
	}
	slices.SortFunc(items, func(a, b domain.Project) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// ProjectSlugTaken reports whether another project already uses slug.
func (r *Repository) ProjectSlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.projects {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// AddProjectLikes adjusts the like counter without going below zero.
func (r *Repository) AddProjectLikes(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Likes = clampAdd(p.Likes, delta)
	r.projects[id] = p
	return p.Likes, nil
}

// CreatePost inserts a post; slugs are unique.
func (r *Repository) CreatePost(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.posts {
		if existing.Slug == p.Slug {
			return repository.ErrConflict
		}
	}
	return insert(r.posts, p.ID, clonePost(*p))
}

// UpdatePost replaces editable fields and keeps views and likes.
func (r *Repository) UpdatePost(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.posts {
		if id != p.ID && other.Slug == p.Slug {
			return repository.ErrConflict
		}
	}
	p.Likes = existing.Likes
	p.Views = existing.Views
	p.CreatedAt = existing.CreatedAt
	r.posts[p.ID] = clonePost(*p)
	return nil
}

// DeletePost removes a post and its comments.
func (r *Repository) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := remove(r.posts, id); err != nil {
		return err
	}
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

// GetPostByID fetches a post.
func (r *Repository) GetPostByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

// GetPostBySlug fetches a post by slug.
func (r *Repository) GetPostBySlug(_ context.Context, slug string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			p = clonePost(p)
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func postTime(p domain.Post) int64 {
	if p.PublishedAt != nil {
		return p.PublishedAt.UnixNano()
	}
	return p.CreatedAt.UnixNano()
}

// ListPosts returns posts newest first by publish time.
func (r *Repository) ListPosts(context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		items = append(items, clonePost(p))
	}
	slices.SortFunc(items, func(a, b domain.Post) int {
		return cmp.Or(cmp.Compare(postTime(b), postTime(a)), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// PostSlugTaken reports whether another post already uses slug.
func (r *Repository) PostSlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.posts {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// AddPostLikes adjusts the like counter without going below zero.
func (r *Repository) AddPostLikes(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Likes = clampAdd(p.Likes, delta)
	r.posts[id] = p
	return p.Likes, nil
}

// IncrementPostViews bumps the view counter by one.
func (r *Repository) IncrementPostViews(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Views++
	r.posts[id] = p
	return p.Views, nil
}

// CreateComment inserts a comment; the target must exist.
func (r *Repository) CreateComment(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if (c.ProjectID == "") == (c.PostID == "") {
		return repository.ErrInvalidArgument
	}
	if c.ProjectID != "" {
		if _, ok := r.projects[c.ProjectID]; !ok {
			return repository.ErrNotFound
		}
	}
	if c.PostID != "" {
		if _, ok := r.posts[c.PostID]; !ok {
			return repository.ErrNotFound
		}
	}
	return insert(r.comments, c.ID, *c)
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.comments, id)
}

// GetCommentByID fetches a comment.
func (r *Repository) GetCommentByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.comments, id)
}

// ListComments returns matching comments, newest first.
func (r *Repository) ListComments(_ context.Context, filter repository.CommentFilter) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]domain.Comment, 0)
	for _, c := range r.comments {
		if filter.ProjectID != "" && c.ProjectID != filter.ProjectID {
			continue
		}
		if filter.PostID != "" && c.PostID != filter.PostID {
			continue
		}
		items = append(items, c)
	}
	slices.SortFunc(items, func(a, b domain.Comment) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// CreateFeedback stores a submission.
func (r *Repository) CreateFeedback(_ context.Context, fb *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *fb
	stored.Email = ""
	stored.EmailSealed = append([]byte(nil), fb.EmailSealed...)
	return insert(r.feedback, fb.ID, stored)
}

// ListFeedback returns submissions newest first.
func (r *Repository) ListFeedback(context.Context) ([]domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := values(r.feedback)
	slices.SortFunc(items, func(a, b domain.Feedback) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// MarkFeedbackRead sets the read flag.
func (r *Repository) MarkFeedbackRead(_ context.Context, id string, read bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.feedback[id]
	if !ok {
		return repository.ErrNotFound
	}
	fb.Read = read
	r.feedback[id] = fb
	return nil
}

// DeleteFeedback removes a submission.
func (r *Repository) DeleteFeedback(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.feedback, id)
}
