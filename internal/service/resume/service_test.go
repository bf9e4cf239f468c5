package resume

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/listing"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

func newService() Service {
	svc := New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func mustDate(t *testing.T, value string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestSkillValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	cases := []SkillInput{
		{Category: "lang", Level: 50},
		{Name: "Go", Level: 50},
		{Name: "Go", Category: "lang", Level: 101},
		{Name: "Go", Category: "lang", Level: -1},
	}
	for _, in := range cases {
		if _, err := svc.CreateSkill(ctx, in); !domain.IsValidation(err) {
			t.Errorf("CreateSkill(%+v) expected validation error, got %v", in, err)
		}
	}
}

func TestSkillCRUD(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.CreateSkill(ctx, SkillInput{Name: " Go ", Category: "language", Level: 90, Order: 2})
	if err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	if created.Name != "Go" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	_, _ = svc.CreateSkill(ctx, SkillInput{Name: "SQL", Category: "data", Level: 70, Order: 1})

	page, err := svc.ListSkills(ctx, listing.Query{})
	if err != nil || page.Total != 2 || page.Items[0].Name != "SQL" {
		t.Fatalf("unexpected list %+v err=%v", page, err)
	}
	page, _ = svc.ListSkills(ctx, listing.Query{Category: "language"})
	if page.Total != 1 {
		t.Fatalf("expected category filter to match one skill, got %d", page.Total)
	}

	updated, err := svc.UpdateSkill(ctx, created.ID, SkillInput{Name: "Golang", Category: "language", Level: 95})
	if err != nil || updated.Name != "Golang" || updated.Level != 95 {
		t.Fatalf("UpdateSkill: %+v %v", updated, err)
	}
	if err := svc.DeleteSkill(ctx, created.ID); err != nil {
		t.Fatalf("DeleteSkill: %v", err)
	}
	if _, err := svc.GetSkill(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := svc.UpdateSkill(ctx, created.ID, SkillInput{Name: "Go", Category: "x"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestExperienceDates(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	end := mustDate(t, "2020-01")
	_, err := svc.CreateExperience(ctx, ExperienceInput{
		Company: "Acme", Position: "Engineer", StartDate: mustDate(t, "2021-03-01"), EndDate: &end,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected end-before-start validation error, got %v", err)
	}

	later := mustDate(t, "2023-01-01")
	exp, err := svc.CreateExperience(ctx, ExperienceInput{
		Company: "Acme", Position: "Engineer", StartDate: mustDate(t, "2021-03-01"), EndDate: &later, Current: true,
		Technologies: []string{"go", " ", "postgres"},
	})
	if err != nil {
		t.Fatalf("CreateExperience: %v", err)
	}
	if exp.EndDate != nil {
		t.Fatalf("current position should clear end date")
	}
	if len(exp.Technologies) != 2 {
		t.Fatalf("expected blank technologies dropped, got %v", exp.Technologies)
	}

	if _, err := svc.CreateExperience(ctx, ExperienceInput{Company: "Acme", Position: "Engineer"}); !domain.IsValidation(err) {
		t.Fatalf("expected missing start date error, got %v", err)
	}

	page, _ := svc.ListExperience(ctx, listing.Query{Status: "current"})
	if page.Total != 1 {
		t.Fatalf("expected one current position, got %d", page.Total)
	}
}

func TestEducationRequiresInstitutionAndDegree(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if _, err := svc.CreateEducation(ctx, EducationInput{Degree: "BSc", StartDate: mustDate(t, "2015-09")}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	edu, err := svc.CreateEducation(ctx, EducationInput{Institution: "Uni", Degree: "BSc", StartDate: mustDate(t, "2015-09")})
	if err != nil {
		t.Fatalf("CreateEducation: %v", err)
	}
	got, err := svc.GetEducation(ctx, edu.ID)
	if err != nil || got.StartDate.String() != "2015-09-01" {
		t.Fatalf("unexpected education %+v %v", got, err)
	}
}

func TestCertificateStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	expired := mustDate(t, "2023-01-01")
	valid := mustDate(t, "2030-01-01")
	_, err := svc.CreateCertificate(ctx, CertificateInput{Title: "Old", Issuer: "Org", IssueDate: mustDate(t, "2020-01-01"), ExpiryDate: &expired})
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	_, _ = svc.CreateCertificate(ctx, CertificateInput{Title: "New", Issuer: "Org", IssueDate: mustDate(t, "2024-01-01"), ExpiryDate: &valid})

	page, _ := svc.ListCertificates(ctx, listing.Query{Status: "expired"})
	if page.Total != 1 || page.Items[0].Title != "Old" {
		t.Fatalf("unexpected expired certificates %+v", page.Items)
	}

	bad := mustDate(t, "2019-01-01")
	if _, err := svc.CreateCertificate(ctx, CertificateInput{Title: "X", Issuer: "Org", IssueDate: mustDate(t, "2020-01-01"), ExpiryDate: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected expiry validation error, got %v", err)
	}
}
