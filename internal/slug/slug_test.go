package slug

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"My Cool Project!":         "my-cool-project",
		"  Hello,   World  ":       "hello-world",
		"tabs\tand\nnewlines":      "tabs-and-newlines",
		"日本語 title":                "title",
		"Go 1.22 routing":          "go-122-routing",
		"Shishir's Portfolio":      "shishirs-portfolio",
		"Don't Stop":               "dont-stop",
		"Node.js API":              "nodejs-api",
		"A/B testing":              "ab-testing",
		"Crème brûlée & café":      "creme-brulee-cafe",
		"already-a-slug":           "already-a-slug",
		"__under_scores__":         "under-scores",
		"Ünïcödé Tïtlé -- 2024 ++": "unicode-title-2024",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeOnlyURLSafe(t *testing.T) {
	titles := []string{"A/B\\C", "emoji 🚀 launch", "tabs\tand\nnewlines", "日本語 title", "!!!x!!!"}
	for _, title := range titles {
		got := Make(title)
		if !slugPattern.MatchString(got) {
			t.Errorf("Make(%q) = %q is not url safe", title, got)
		}
	}
	if got := Make("!!!"); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}

func TestUnique(t *testing.T) {
	now := func() time.Time { return time.UnixMilli(1700000000123) }
	free := func(context.Context, string) (bool, error) { return false, nil }
	taken := func(context.Context, string) (bool, error) { return true, nil }

	got, err := Unique(context.Background(), "My Cool Project!", "project", free, now)
	if err != nil || got != "my-cool-project" {
		t.Fatalf("unexpected %q %v", got, err)
	}
	got, err = Unique(context.Background(), "My Cool Project!", "project", taken, now)
	if err != nil || got != "my-cool-project-1700000000123" {
		t.Fatalf("unexpected %q %v", got, err)
	}
	got, _ = Unique(context.Background(), "???", "post", free, now)
	if got != "post" {
		t.Fatalf("expected fallback, got %q", got)
	}

	boom := errors.New("boom")
	if _, err := Unique(context.Background(), "x", "p", func(context.Context, string) (bool, error) { return false, boom }, now); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
