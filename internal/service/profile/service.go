package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

// Input carries the full profile document; Save replaces every field.
type Input struct {
	Name      string         `json:"name" yaml:"name"`
	Title     string         `json:"title" yaml:"title"`
	Bio       string         `json:"bio" yaml:"bio"`
	About     string         `json:"about" yaml:"about"`
	Email     string         `json:"email" yaml:"email"`
	Phone     string         `json:"phone" yaml:"phone"`
	Location  string         `json:"location" yaml:"location"`
	Avatar    string         `json:"avatar" yaml:"avatar"`
	ResumeURL string         `json:"resumeUrl" yaml:"resumeUrl"`
	Socials   domain.Socials `json:"socials" yaml:"socials"`
}

// Service manages the site owner's profile.
type Service struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
}

// New returns a profile service.
func New(repo repository.ProfileRepository, logger *slog.Logger) Service {
	return Service{repo: repo, logger: logger}
}

// Get returns the profile or repository.ErrNotFound before the first Save.
func (s Service) Get(ctx context.Context) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx)
}

// Save validates and stores the profile.
func (s Service) Save(ctx context.Context, in Input) (*domain.Profile, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Invalid("title", "is required")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.Invalid("email", "is not a valid address")
		}
	}
	p := &domain.Profile{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Title:     strings.TrimSpace(in.Title),
		Bio:       in.Bio,
		About:     in.About,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Location:  strings.TrimSpace(in.Location),
		Avatar:    strings.TrimSpace(in.Avatar),
		ResumeURL: strings.TrimSpace(in.ResumeURL),
		Socials:   in.Socials,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info("profile saved", "profile_id", p.ID)
	return p, nil
}
