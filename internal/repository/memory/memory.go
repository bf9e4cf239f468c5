// Package memory is a process-local implementation of the repository
// interfaces. It backs the API when no DATABASE_URL is configured and is
// shared by package tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

// Repository holds every collection behind a single lock.
type Repository struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	profile      *domain.Profile
	skills       map[string]domain.Skill
	experience   map[string]domain.Experience
	education    map[string]domain.Education
	certificates map[string]domain.Certificate
	projects     map[string]domain.Project
	posts        map[string]domain.Post
	comments     map[string]domain.Comment
	feedback     map[string]domain.Feedback
	visits       []domain.Visit
}

var (
	_ repository.Store                 = (*Repository)(nil)
	_ repository.UserRepository        = (*Repository)(nil)
	_ repository.ProfileRepository     = (*Repository)(nil)
	_ repository.SkillRepository       = (*Repository)(nil)
	_ repository.ExperienceRepository  = (*Repository)(nil)
	_ repository.EducationRepository   = (*Repository)(nil)
	_ repository.CertificateRepository = (*Repository)(nil)
	_ repository.ProjectRepository     = (*Repository)(nil)
	_ repository.PostRepository        = (*Repository)(nil)
	_ repository.CommentRepository     = (*Repository)(nil)
	_ repository.FeedbackRepository    = (*Repository)(nil)
	_ repository.VisitorRepository     = (*Repository)(nil)
)

// New returns an empty repository.
func New() *Repository {
	return &Repository{
		users:        make(map[string]domain.User),
		skills:       make(map[string]domain.Skill),
		experience:   make(map[string]domain.Experience),
		education:    make(map[string]domain.Education),
		certificates: make(map[string]domain.Certificate),
		projects:     make(map[string]domain.Project),
		posts:        make(map[string]domain.Post),
		comments:     make(map[string]domain.Comment),
		feedback:     make(map[string]domain.Feedback),
	}
}

// Ping always succeeds; it mirrors pgxpool.Pool.Ping for health checks.
func (r *Repository) Ping(context.Context) error { return nil }

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}

func insert[T any](m map[string]T, id string, v T) error {
	if _, ok := m[id]; ok {
		return repository.ErrConflict
	}
	m[id] = v
	return nil
}

func replace[T any](m map[string]T, id string, v T) error {
	if _, ok := m[id]; !ok {
		return repository.ErrNotFound
	}
	m[id] = v
	return nil
}

func remove[T any](m map[string]T, id string) error {
	if _, ok := m[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m, id)
	return nil
}

func lookup[T any](m map[string]T, id string) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func values[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// CreateUser inserts a user; emails are unique case-insensitively.
func (r *Repository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrConflict
		}
	}
	return insert(r.users, user.ID, *user)
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetUserByID fetches a user.
func (r *Repository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.users, id)
}

// GetProfile returns the singleton profile.
func (r *Repository) GetProfile(context.Context) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return nil, repository.ErrNotFound
	}
	p := *r.profile
	return &p, nil
}

// SaveProfile replaces the profile, keeping the first id assigned.
func (r *Repository) SaveProfile(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile != nil {
		p.ID = r.profile.ID
	}
	stored := *p
	r.profile = &stored
	return nil
}

// CreateSkill inserts a skill.
func (r *Repository) CreateSkill(_ context.Context, s *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.skills, s.ID, *s)
}

// UpdateSkill replaces a skill.
func (r *Repository) UpdateSkill(_ context.Context, s *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.skills[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.CreatedAt = existing.CreatedAt
	r.skills[s.ID] = *s
	return nil
}

// DeleteSkill removes a skill.
func (r *Repository) DeleteSkill(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.skills, id)
}

// GetSkillByID fetches a skill.
func (r *Repository) GetSkillByID(_ context.Context, id string) (*domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.skills, id)
}

// ListSkills returns skills by order, newest first on ties.
func (r *Repository) ListSkills(context.Context) ([]domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := values(r.skills)
	slices.SortFunc(items, func(a, b domain.Skill) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), b.CreatedAt.Compare(a.CreatedAt))
	})
	return items, nil
}

// CreateExperience inserts a work history entry.
func (r *Repository) CreateExperience(_ context.Context, e *domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	stored.Technologies = cloneStrings(e.Technologies)
	return insert(r.experience, e.ID, stored)
}

// UpdateExperience replaces a work history entry.
func (r *Repository) UpdateExperience(_ context.Context, e *domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	stored.Technologies = cloneStrings(e.Technologies)
	return replace(r.experience, e.ID, stored)
}

// DeleteExperience removes a work history entry.
func (r *Repository) DeleteExperience(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.experience, id)
}

// GetExperienceByID fetches a work history entry.
func (r *Repository) GetExperienceByID(_ context.Context, id string) (*domain.Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.experience, id)
}

// ListExperience returns work history by order, latest start first.
func (r *Repository) ListExperience(context.Context) ([]domain.Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := values(r.experience)
	slices.SortFunc(items, func(a, b domain.Experience) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), b.StartDate.Compare(a.StartDate.Time))
	})
	return items, nil
}

// CreateEducation inserts an education entry.
func (r *Repository) CreateEducation(_ context.Context, e *domain.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.education, e.ID, *e)
}

// UpdateEducation replaces an education entry.
func (r *Repository) UpdateEducation(_ context.Context, e *domain.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return replace(r.education, e.ID, *e)
}

// DeleteEducation removes an education entry.
func (r *Repository) DeleteEducation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.education, id)
}

// GetEducationByID fetches an education entry.
func (r *Repository) GetEducationByID(_ context.Context, id string) (*domain.Education, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.education, id)
}

// ListEducation returns education by order, latest start first.
func (r *Repository) ListEducation(context.Context) ([]domain.Education, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := values(r.education)
	slices.SortFunc(items, func(a, b domain.Education) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), b.StartDate.Compare(a.StartDate.Time))
	})
	return items, nil
}

// CreateCertificate inserts a certificate.
func (r *Repository) CreateCertificate(_ context.Context, c *domain.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return insert(r.certificates, c.ID, *c)
}

// UpdateCertificate replaces a certificate.
func (r *Repository) UpdateCertificate(_ context.Context, c *domain.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return replace(r.certificates, c.ID, *c)
}

// DeleteCertificate removes a certificate.
func (r *Repository) DeleteCertificate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return remove(r.certificates, id)
}

// GetCertificateByID fetches a certificate.
func (r *Repository) GetCertificateByID(_ context.Context, id string) (*domain.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lookup(r.certificates, id)
}

// ListCertificates returns certificates by order, latest issue first.
func (r *Repository) ListCertificates(context.Context) ([]domain.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := values(r.certificates)
	slices.SortFunc(items, func(a, b domain.Certificate) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), b.IssueDate.Compare(a.IssueDate.Time))
	})
	return items, nil
}

// RecordVisit stores a page view.
func (r *Repository) RecordVisit(_ context.Context, v *domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, *v)
	return nil
}

// VisitorStats aggregates visits recorded at or after since.
func (r *Repository) VisitorStats(_ context.Context, since time.Time, topPaths int) (domain.VisitorStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := domain.VisitorStats{TopPaths: []domain.PathCount{}, Daily: []domain.DayCount{}}
	unique := make(map[string]struct{})
	paths := make(map[string]int)
	days := make(map[string]int)
	for _, v := range r.visits {
		if v.CreatedAt.Before(since) {
			continue
		}
		stats.Total++
		unique[v.IPHash] = struct{}{}
		paths[v.Path]++
		days[v.CreatedAt.UTC().Format("2006-01-02")]++
	}
	stats.Unique = len(unique)

	for path, count := range paths {
		stats.TopPaths = append(stats.TopPaths, domain.PathCount{Path: path, Count: count})
	}
	sort.Slice(stats.TopPaths, func(i, j int) bool {
		a, b := stats.TopPaths[i], stats.TopPaths[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Path < b.Path
	})
	if topPaths > 0 && len(stats.TopPaths) > topPaths {
		stats.TopPaths = stats.TopPaths[:topPaths]
	}

	for day, count := range days {
		stats.Daily = append(stats.Daily, domain.DayCount{Day: day, Count: count})
	}
	sort.Slice(stats.Daily, func(i, j int) bool { return stats.Daily[i].Day < stats.Daily[j].Day })
	return stats, nil
}
