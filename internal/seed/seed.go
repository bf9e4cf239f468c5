// Package seed loads demonstration content into a running API.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/blog"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/profile"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/resume"
)

//go:embed demo.yaml
var demo []byte

// Document is the seed file layout.
type Document struct {
	Profile      *profile.Input            `yaml:"profile"`
	Skills       []resume.SkillInput       `yaml:"skills"`
	Experience   []resume.ExperienceInput  `yaml:"experience"`
	Education    []resume.EducationInput   `yaml:"education"`
	Certificates []resume.CertificateInput `yaml:"certificates"`
	Projects     []project.Input           `yaml:"projects"`
	Posts        []blog.Input              `yaml:"posts"`
}

// Target is the subset of the API client the loader writes through.
type Target interface {
	SaveProfile(ctx context.Context, token string, in profile.Input) (domain.Profile, error)
	CreateSkill(ctx context.Context, token string, in resume.SkillInput) (domain.Skill, error)
	CreateExperience(ctx context.Context, token string, in resume.ExperienceInput) (domain.Experience, error)
	CreateEducation(ctx context.Context, token string, in resume.EducationInput) (domain.Education, error)
	CreateCertificate(ctx context.Context, token string, in resume.CertificateInput) (domain.Certificate, error)
	CreateProject(ctx context.Context, token string, in project.Input) (domain.Project, error)
	CreatePost(ctx context.Context, token string, in blog.Input) (domain.Post, error)
}

// Summary counts what Apply created.
type Summary struct {
	Profile      bool
	Skills       int
	Experience   int
	Education    int
	Certificates int
	Projects     int
	Posts        int
}

// Demo returns the built-in demonstration content.
func Demo() (Document, error) {
	return Parse(demo)
}

// Load reads a seed document from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode seed: %w", err)
	}
	return doc, nil
}

// Apply writes doc through target, stopping at the first failure. Projects
// and posts are created, so applying twice yields slug-suffixed copies.
func Apply(ctx context.Context, target Target, token string, doc Document, log *slog.Logger) (Summary, error) {
	var sum Summary
	if doc.Profile != nil {
		if _, err := target.SaveProfile(ctx, token, *doc.Profile); err != nil {
			return sum, fmt.Errorf("profile: %w", err)
		}
		sum.Profile = true
	}
	for _, in := range doc.Skills {
		if _, err := target.CreateSkill(ctx, token, in); err != nil {
			return sum, fmt.Errorf("skill %q: %w", in.Name, err)
		}
		sum.Skills++
	}
	for _, in := range doc.Experience {
		if _, err := target.CreateExperience(ctx, token, in); err != nil {
			return sum, fmt.Errorf("experience %q: %w", in.Company, err)
		}
		sum.Experience++
	}
	for _, in := range doc.Education {
		if _, err := target.CreateEducation(ctx, token, in); err != nil {
			return sum, fmt.Errorf("education %q: %w", in.Institution, err)
		}
		sum.Education++
	}
	for _, in := range doc.Certificates {
		if _, err := target.CreateCertificate(ctx, token, in); err != nil {
			return sum, fmt.Errorf("certificate %q: %w", in.Title, err)
		}
		sum.Certificates++
	}
	for _, in := range doc.Projects {
		p, err := target.CreateProject(ctx, token, in)
		if err != nil {
			return sum, fmt.Errorf("project %q: %w", in.Title, err)
		}
		log.Debug("seeded project", "slug", p.Slug)
		sum.Projects++
	}
	for _, in := range doc.Posts {
		p, err := target.CreatePost(ctx, token, in)
		if err != nil {
			return sum, fmt.Errorf("post %q: %w", in.Title, err)
		}
		log.Debug("seeded post", "slug", p.Slug, "published", p.Published)
		sum.Posts++
	}
	log.Info("seed applied",
		"skills", sum.Skills, "experience", sum.Experience, "education", sum.Education,
		"certificates", sum.Certificates, "projects", sum.Projects, "posts", sum.Posts)
	return sum, nil
}
