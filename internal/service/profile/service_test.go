package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

func TestSaveReplacesSingleton(t *testing.T) {
	svc := New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	if _, err := svc.Get(ctx); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found before first save, got %v", err)
	}
	first, err := svc.Save(ctx, Input{Name: "Jane", Title: "Engineer", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := svc.Save(ctx, Input{Name: "Jane Doe", Title: "Staff Engineer", Socials: domain.Socials{GitHub: "https://github.com/jane"}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("profile id changed across saves: %s vs %s", first.ID, second.ID)
	}
	got, _ := svc.Get(ctx)
	if got.Name != "Jane Doe" || got.Email != "" || got.Socials.GitHub == "" {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestSaveValidates(t *testing.T) {
	svc := New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, in := range []Input{{Title: "x"}, {Name: "x"}, {Name: "x", Title: "y", Email: "not-an-email"}} {
		if _, err := svc.Save(context.Background(), in); !domain.IsValidation(err) {
			t.Errorf("Save(%+v) expected validation error, got %v", in, err)
		}
	}
}
