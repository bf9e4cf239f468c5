package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newService(t *testing.T, max int64) Service {
	t.Helper()
	svc := New(t.TempDir(), "http://localhost:4000/", max, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestSaveStoresByDate(t *testing.T) {
	svc := newService(t, 1<<20)
	file, err := svc.Save(context.Background(), "avatar.bin", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if file.ContentType != "image/png" || file.Size != int64(len(pngHeader)) {
		t.Fatalf("unexpected file %+v", file)
	}
	if !strings.HasPrefix(file.URL, "http://localhost:4000/uploads/2024/02/") || !strings.HasSuffix(file.URL, ".png") {
		t.Fatalf("unexpected url %q", file.URL)
	}
	rel := strings.TrimPrefix(file.URL, "http://localhost:4000/uploads/")
	data, err := os.ReadFile(filepath.Join(svc.Root(), filepath.FromSlash(rel)))
	if err != nil || !bytes.Equal(data, pngHeader) {
		t.Fatalf("stored file mismatch: %v", err)
	}
}

func TestSaveRejectsDisallowedTypes(t *testing.T) {
	svc := newService(t, 1<<20)
	_, err := svc.Save(context.Background(), "evil.png", strings.NewReader("#!/bin/sh\necho hi\n"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "empty.png", strings.NewReader("")); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty file, got %v", err)
	}
}

func TestSaveAcceptsSVG(t *testing.T) {
	svc := newService(t, 1<<20)
	file, err := svc.Save(context.Background(), "logo.svg", strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if file.ContentType != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", file.ContentType)
	}
}

func TestSaveEnforcesLimit(t *testing.T) {
	svc := newService(t, 32)
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	if _, err := svc.Save(context.Background(), "big.png", bytes.NewReader(payload)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(svc.Root(), "2024", "02"))
	if len(entries) != 0 {
		t.Fatalf("oversized upload left %d files behind", len(entries))
	}
}
