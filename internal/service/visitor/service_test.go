package visitor

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository/memory"
)

func TestRecordHashesIP(t *testing.T) {
	svc := New(memory.New(), "salt", slog.New(slog.NewTextHandler(io.Discard, nil)))
	visit, err := svc.Record(context.Background(), Input{Path: "https://example.com/blog/hello?utm=x", IP: "198.51.100.7"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if visit.Path != "/blog/hello" {
		t.Fatalf("unexpected path %q", visit.Path)
	}
	if visit.IPHash == "" || strings.Contains(visit.IPHash, "198.51.100.7") {
		t.Fatalf("raw ip leaked into hash %q", visit.IPHash)
	}
	if _, err := svc.Record(context.Background(), Input{Path: " "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatsWindow(t *testing.T) {
	repo := memory.New()
	svc := New(repo, "salt", slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	record := func(at time.Time, path, ip string) {
		svc.now = func() time.Time { return at }
		if _, err := svc.Record(ctx, Input{Path: path, IP: ip}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	record(clock, "/", "a")
	record(clock.Add(-time.Hour), "/", "b")
	record(clock.Add(-48*time.Hour), "/about", "a")
	record(clock.Add(-10*24*time.Hour), "/old", "c")
	svc.now = func() time.Time { return clock }

	stats, err := svc.Stats(ctx, 7)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Unique != 2 || stats.Today != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.TopPaths[0].Path != "/" {
		t.Fatalf("unexpected top paths %+v", stats.TopPaths)
	}
}
