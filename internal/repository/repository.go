package repository

import (
	"context"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

// UserRepository persists dashboard accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ProfileRepository stores the singleton profile.
type ProfileRepository interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
}

// SkillRepository persists skills.
type SkillRepository interface {
	CreateSkill(ctx context.Context, skill *domain.Skill) error
	UpdateSkill(ctx context.Context, skill *domain.Skill) error
	DeleteSkill(ctx context.Context, id string) error
	GetSkillByID(ctx context.Context, id string) (*domain.Skill, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
}

// ExperienceRepository persists work history.
type ExperienceRepository interface {
	CreateExperience(ctx context.Context, exp *domain.Experience) error
	UpdateExperience(ctx context.Context, exp *domain.Experience) error
	DeleteExperience(ctx context.Context, id string) error
	GetExperienceByID(ctx context.Context, id string) (*domain.Experience, error)
	ListExperience(ctx context.Context) ([]domain.Experience, error)
}

// EducationRepository persists education history.
type EducationRepository interface {
	CreateEducation(ctx context.Context, edu *domain.Education) error
	UpdateEducation(ctx context.Context, edu *domain.Education) error
	DeleteEducation(ctx context.Context, id string) error
	GetEducationByID(ctx context.Context, id string) (*domain.Education, error)
	ListEducation(ctx context.Context) ([]domain.Education, error)
}

// CertificateRepository persists certificates.
type CertificateRepository interface {
	CreateCertificate(ctx context.Context, cert *domain.Certificate) error
	UpdateCertificate(ctx context.Context, cert *domain.Certificate) error
	DeleteCertificate(ctx context.Context, id string) error
	GetCertificateByID(ctx context.Context, id string) (*domain.Certificate, error)
	ListCertificates(ctx context.Context) ([]domain.Certificate, error)
}

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *domain.Project) error
	UpdateProject(ctx context.Context, project *domain.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectByID(ctx context.Context, id string) (*domain.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	// ProjectSlugTaken reports whether slug belongs to a project other than excludeID.
	ProjectSlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	// AddProjectLikes applies delta to the like counter, clamped at zero.
	AddProjectLikes(ctx context.Context, id string, delta int) (int, error)
}

// PostRepository persists blog posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id string) error
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	PostSlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	AddPostLikes(ctx context.Context, id string, delta int) (int, error)
	IncrementPostViews(ctx context.Context, id string) (int, error)
}

// CommentFilter selects comments for one target. Empty fields match everything.
type CommentFilter struct {
	ProjectID string
	PostID    string
}

// CommentRepository persists comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id string) error
	GetCommentByID(ctx context.Context, id string) (*domain.Comment, error)
	ListComments(ctx context.Context, filter CommentFilter) ([]domain.Comment, error)
}

// FeedbackRepository persists contact form submissions.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *domain.Feedback) error
	ListFeedback(ctx context.Context) ([]domain.Feedback, error)
	MarkFeedbackRead(ctx context.Context, id string, read bool) error
	DeleteFeedback(ctx context.Context, id string) error
}

// VisitorRepository records page views and summarises them.
type VisitorRepository interface {
	RecordVisit(ctx context.Context, visit *domain.Visit) error
	VisitorStats(ctx context.Context, since time.Time, topPaths int) (domain.VisitorStats, error)
}

// Store is the full persistence surface the API runs on. PostgreSQL and
// the in-memory repository both implement it.
type Store interface {
	UserRepository
	ProfileRepository
	SkillRepository
	ExperienceRepository
	EducationRepository
	CertificateRepository
	ProjectRepository
	PostRepository
	CommentRepository
	FeedbackRepository
	VisitorRepository
	Ping(ctx context.Context) error
}
