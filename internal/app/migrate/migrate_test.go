package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSourceFallsBackToEmbedded(t *testing.T) {
	fsys, source, err := Source(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if source != "embedded" {
		t.Fatalf("expected embedded source, got %q", source)
	}
	matches, err := fs.Glob(fsys, "*.sql")
	if err != nil || len(matches) == 0 {
		t.Fatalf("expected embedded migrations, got %v (err %v)", matches, err)
	}
}

func TestSourcePrefersDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "00001_init.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
	fsys, source, err := Source(dir)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if source != dir {
		t.Fatalf("expected %q, got %q", dir, source)
	}
	if _, err := fs.Stat(fsys, "00001_init.sql"); err != nil {
		t.Fatalf("expected migration in dir fs: %v", err)
	}
}

func TestSourceRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "migrations.sql")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Source(file); err == nil {
		t.Fatal("expected error for non-directory path")
	}
}
