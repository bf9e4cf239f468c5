// Package resume manages the about-page collections: skills, work
// experience, education and certificates.
package resume

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
)

// Repository is the storage the service needs.
type Repository interface {
	repository.SkillRepository
	repository.ExperienceRepository
	repository.EducationRepository
	repository.CertificateRepository
}

// Service orchestrates resume content.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// New returns a resume service.
func New(repo Repository, logger *slog.Logger) Service {
	return Service{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	return nil
}

// checkRange validates an optional end date against a start date and
// clears it for ongoing entries.
func checkRange(field string, start domain.Date, end *domain.Date, current bool) (*domain.Date, error) {
	if current || end == nil || end.IsZero() {
		return nil, nil
	}
	if end.Before(start) {
		return nil, domain.Invalid(field, "must not be before the start date")
	}
	return end, nil
}

func currentStatus(current bool) string {
	if current {
		return "current"
	}
	return "past"
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SkillInput carries the editable skill fields.
type SkillInput struct {
	Name     string `json:"name" yaml:"name"`
	Level    int    `json:"level" yaml:"level"`
	Category string `json:"category" yaml:"category"`
	Icon     string `json:"icon" yaml:"icon"`
	Order    int    `json:"order" yaml:"order"`
}

func (in SkillInput) validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := required("category", in.Category); err != nil {
		return err
	}
	if in.Level < 0 || in.Level > 100 {
		return domain.Invalid("level", "must be between 0 and 100")
	}
	return nil
}

func (in SkillInput) apply(s *domain.Skill) {
	s.Name = strings.TrimSpace(in.Name)
	s.Level = in.Level
	s.Category = strings.TrimSpace(in.Category)
	s.Icon = strings.TrimSpace(in.Icon)
	s.Order = in.Order
}

// ListSkills returns skills matching q.
func (s Service) ListSkills(ctx context.Context, q listing.Query) (listing.Page[domain.Skill], error) {
	items, err := s.repo.ListSkills(ctx)
	if err != nil {
		return listing.Page[domain.Skill]{}, fmt.Errorf("list skills: %w", err)
	}
	return listing.Apply(items, q, func(sk domain.Skill) listing.Fields {
		return listing.Fields{Title: sk.Name, Category: sk.Category, Order: sk.Order, CreatedAt: sk.CreatedAt}
	}), nil
}

// GetSkill fetches a skill.
func (s Service) GetSkill(ctx context.Context, id string) (*domain.Skill, error) {
	return s.repo.GetSkillByID(ctx, id)
}

// CreateSkill validates and stores a skill.
func (s Service) CreateSkill(ctx context.Context, in SkillInput) (*domain.Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	skill := &domain.Skill{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.apply(skill)
	if err := s.repo.CreateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	s.logger.Info("skill created", "skill_id", skill.ID)
	return skill, nil
}

// UpdateSkill replaces a skill's editable fields.
func (s Service) UpdateSkill(ctx context.Context, id string, in SkillInput) (*domain.Skill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	skill, err := s.repo.GetSkillByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(skill)
	skill.UpdatedAt = s.now()
	if err := s.repo.UpdateSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	s.logger.Info("skill updated", "skill_id", skill.ID)
	return skill, nil
}

// DeleteSkill removes a skill.
func (s Service) DeleteSkill(ctx context.Context, id string) error {
	if err := s.repo.DeleteSkill(ctx, id); err != nil {
		return err
	}
	s.logger.Info("skill deleted", "skill_id", id)
	return nil
}

// ExperienceInput carries the editable work history fields.
type ExperienceInput struct {
	Company      string       `json:"company" yaml:"company"`
	Position     string       `json:"position" yaml:"position"`
	Location     string       `json:"location" yaml:"location"`
	Description  string       `json:"description" yaml:"description"`
	StartDate    domain.Date  `json:"startDate" yaml:"startDate"`
	EndDate      *domain.Date `json:"endDate" yaml:"endDate"`
	Current      bool         `json:"current" yaml:"current"`
	Technologies []string     `json:"technologies" yaml:"technologies"`
	Order        int          `json:"order" yaml:"order"`
}

func (in ExperienceInput) build(e *domain.Experience) error {
	if err := required("company", in.Company); err != nil {
		return err
	}
	if err := required("position", in.Position); err != nil {
		return err
	}
	if in.StartDate.IsZero() {
		return domain.Invalid("startDate", "is required")
	}
	end, err := checkRange("endDate", in.StartDate, in.EndDate, in.Current)
	if err != nil {
		return err
	}
	e.Company = strings.TrimSpace(in.Company)
	e.Position = strings.TrimSpace(in.Position)
	e.Location = strings.TrimSpace(in.Location)
	e.Description = in.Description
	e.StartDate = in.StartDate
	e.EndDate = end
	e.Current = in.Current
	e.Technologies = cleanList(in.Technologies)
	e.Order = in.Order
	return nil
}

// ListExperience returns work history matching q. Status filters on
// current or past.
func (s Service) ListExperience(ctx context.Context, q listing.Query) (listing.Page[domain.Experience], error) {
	items, err := s.repo.ListExperience(ctx)
	if err != nil {
		return listing.Page[domain.Experience]{}, fmt.Errorf("list experience: %w", err)
	}
	return listing.Apply(items, q, func(e domain.Experience) listing.Fields {
		return listing.Fields{
			Title:     e.Position,
			Status:    currentStatus(e.Current),
			Tags:      e.Technologies,
			Text:      []string{e.Company, e.Description},
			Order:     e.Order,
			CreatedAt: e.StartDate.Time,
		}
	}), nil
}

// GetExperience fetches a work history entry.
func (s Service) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	return s.repo.GetExperienceByID(ctx, id)
}

// CreateExperience validates and stores a work history entry.
func (s Service) CreateExperience(ctx context.Context, in ExperienceInput) (*domain.Experience, error) {
	now := s.now()
	exp := &domain.Experience{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := in.build(exp); err != nil {
		return nil, err
	}
	if err := s.repo.CreateExperience(ctx, exp); err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	s.logger.Info("experience created", "experience_id", exp.ID)
	return exp, nil
}

// UpdateExperience replaces a work history entry.
func (s Service) UpdateExperience(ctx context.Context, id string, in ExperienceInput) (*domain.Experience, error) {
	exp, err := s.repo.GetExperienceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.build(exp); err != nil {
		return nil, err
	}
	exp.UpdatedAt = s.now()
	if err := s.repo.UpdateExperience(ctx, exp); err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	s.logger.Info("experience updated", "experience_id", exp.ID)
	return exp, nil
}

// DeleteExperience removes a work history entry.
func (s Service) DeleteExperience(ctx context.Context, id string) error {
	if err := s.repo.DeleteExperience(ctx, id); err != nil {
		return err
	}
	s.logger.Info("experience deleted", "experience_id", id)
	return nil
}

// EducationInput carries the editable education fields.
type EducationInput struct {
	Institution string       `json:"institution" yaml:"institution"`
	Degree      string       `json:"degree" yaml:"degree"`
	Field       string       `json:"field" yaml:"field"`
	Location    string       `json:"location" yaml:"location"`
	Description string       `json:"description" yaml:"description"`
	StartDate   domain.Date  `json:"startDate" yaml:"startDate"`
	EndDate     *domain.Date `json:"endDate" yaml:"endDate"`
	Current     bool         `json:"current" yaml:"current"`
	Grade       string       `json:"grade" yaml:"grade"`
	Order       int          `json:"order" yaml:"order"`
}

func (in EducationInput) build(e *domain.Education) error {
	if err := required("institution", in.Institution); err != nil {
		return err
	}
	if err := required("degree", in.Degree); err != nil {
		return err
	}
	if in.StartDate.IsZero() {
		return domain.Invalid("startDate", "is required")
	}
	end, err := checkRange("endDate", in.StartDate, in.EndDate, in.Current)
	if err != nil {
		return err
	}
	e.Institution = strings.TrimSpace(in.Institution)
	e.Degree = strings.TrimSpace(in.Degree)
	e.Field = strings.TrimSpace(in.Field)
	e.Location = strings.TrimSpace(in.Location)
	e.Description = in.Description
	e.StartDate = in.StartDate
	e.EndDate = end
	e.Current = in.Current
	e.Grade = strings.TrimSpace(in.Grade)
	e.Order = in.Order
	return nil
}

// ListEducation returns education entries matching q.
func (s Service) ListEducation(ctx context.Context, q listing.Query) (listing.Page[domain.Education], error) {
	items, err := s.repo.ListEducation(ctx)
	if err != nil {
		return listing.Page[domain.Education]{}, fmt.Errorf("list education: %w", err)
	}
	return listing.Apply(items, q, func(e domain.Education) listing.Fields {
		return listing.Fields{
			Title:     e.Degree,
			Category:  e.Field,
			Status:    currentStatus(e.Current),
			Text:      []string{e.Institution, e.Description},
			Order:     e.Order,
			CreatedAt: e.StartDate.Time,
		}
	}), nil
}

// GetEducation fetches an education entry.
func (s Service) GetEducation(ctx context.Context, id string) (*domain.Education, error) {
	return s.repo.GetEducationByID(ctx, id)
}

// CreateEducation validates and stores an education entry.
func (s Service) CreateEducation(ctx context.Context, in EducationInput) (*domain.Education, error) {
	now := s.now()
	edu := &domain.Education{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := in.build(edu); err != nil {
		return nil, err
	}
	if err := s.repo.CreateEducation(ctx, edu); err != nil {
		return nil, fmt.Errorf("create education: %w", err)
	}
	s.logger.Info("education created", "education_id", edu.ID)
	return edu, nil
}

// UpdateEducation replaces an education entry.
func (s Service) UpdateEducation(ctx context.Context, id string, in EducationInput) (*domain.Education, error) {
	edu, err := s.repo.GetEducationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.build(edu); err != nil {
		return nil, err
	}
	edu.UpdatedAt = s.now()
	if err := s.repo.UpdateEducation(ctx, edu); err != nil {
		return nil, fmt.Errorf("update education: %w", err)
	}
	s.logger.Info("education updated", "education_id", edu.ID)
	return edu, nil
}

// DeleteEducation removes an education entry.
func (s Service) DeleteEducation(ctx context.Context, id string) error {
	if err := s.repo.DeleteEducation(ctx, id); err != nil {
		return err
	}
	s.logger.Info("education deleted", "education_id", id)
	return nil
}

// CertificateInput carries the editable certificate fields.
type CertificateInput struct {
	Title         string       `json:"title" yaml:"title"`
	Issuer        string       `json:"issuer" yaml:"issuer"`
	IssueDate     domain.Date  `json:"issueDate" yaml:"issueDate"`
	ExpiryDate    *domain.Date `json:"expiryDate" yaml:"expiryDate"`
	CredentialID  string       `json:"credentialId" yaml:"credentialId"`
	CredentialURL string       `json:"credentialUrl" yaml:"credentialUrl"`
	Image         string       `json:"image" yaml:"image"`
	Order         int          `json:"order" yaml:"order"`
}

func (in CertificateInput) build(c *domain.Certificate) error {
	if err := required("title", in.Title); err != nil {
		return err
	}
	if err := required("issuer", in.Issuer); err != nil {
		return err
	}
	if in.IssueDate.IsZero() {
		return domain.Invalid("issueDate", "is required")
	}
	expiry, err := checkRange("expiryDate", in.IssueDate, in.ExpiryDate, false)
	if err != nil {
		return err
	}
	c.Title = strings.TrimSpace(in.Title)
	c.Issuer = strings.TrimSpace(in.Issuer)
	c.IssueDate = in.IssueDate
	c.ExpiryDate = expiry
	c.CredentialID = strings.TrimSpace(in.CredentialID)
	c.CredentialURL = strings.TrimSpace(in.CredentialURL)
	c.Image = strings.TrimSpace(in.Image)
	c.Order = in.Order
	return nil
}

// ListCertificates returns certificates matching q. Status filters on
// valid or expired.
func (s Service) ListCertificates(ctx context.Context, q listing.Query) (listing.Page[domain.Certificate], error) {
	items, err := s.repo.ListCertificates(ctx)
	if err != nil {
		return listing.Page[domain.Certificate]{}, fmt.Errorf("list certificates: %w", err)
	}
	today := domain.NewDate(s.now())
	return listing.Apply(items, q, func(c domain.Certificate) listing.Fields {
		status := "valid"
		if c.ExpiryDate != nil && c.ExpiryDate.Before(today) {
			status = "expired"
		}
		return listing.Fields{
			Title:     c.Title,
			Category:  c.Issuer,
			Status:    status,
			Text:      []string{c.Issuer, c.CredentialID},
			Order:     c.Order,
			CreatedAt: c.IssueDate.Time,
		}
	}), nil
}

// GetCertificate fetches a certificate.
func (s Service) GetCertificate(ctx context.Context, id string) (*domain.Certificate, error) {
	return s.repo.GetCertificateByID(ctx, id)
}

// CreateCertificate validates and stores a certificate.
func (s Service) CreateCertificate(ctx context.Context, in CertificateInput) (*domain.Certificate, error) {
	now := s.now()
	cert := &domain.Certificate{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := in.build(cert); err != nil {
		return nil, err
	}
	if err := s.repo.CreateCertificate(ctx, cert); err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	s.logger.Info("certificate created", "certificate_id", cert.ID)
	return cert, nil
}

// UpdateCertificate replaces a certificate.
func (s Service) UpdateCertificate(ctx context.Context, id string, in CertificateInput) (*domain.Certificate, error) {
	cert, err := s.repo.GetCertificateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.build(cert); err != nil {
		return nil, err
	}
	cert.UpdatedAt = s.now()
	if err := s.repo.UpdateCertificate(ctx, cert); err != nil {
		return nil, fmt.Errorf("update certificate: %w", err)
	}
	s.logger.Info("certificate updated", "certificate_id", cert.ID)
	return cert, nil
}

// DeleteCertificate removes a certificate.
func (s Service) DeleteCertificate(ctx context.Context, id string) error {
	if err := s.repo.DeleteCertificate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("certificate deleted", "certificate_id", id)
	return nil
}
