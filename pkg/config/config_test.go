package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetList(t *testing.T) {
	t.Setenv("FOLIO_TEST_LIST", " a, ,b ,c")
	got := GetList("FOLIO_TEST_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected list %v", got)
	}
	if got := GetList("FOLIO_TEST_LIST_UNSET", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestGetIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("FOLIO_TEST_INT", "nope")
	if got := GetInt("FOLIO_TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FOLIO_DOTENV_NEW=fromfile\nFOLIO_DOTENV_SET=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_DOTENV_SET", "fromenv")
	t.Cleanup(func() { os.Unsetenv("FOLIO_DOTENV_NEW") })

	LoadDotEnv(path, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("FOLIO_DOTENV_NEW"); got != "fromfile" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("FOLIO_DOTENV_SET"); got != "fromenv" {
		t.Fatalf("existing env should win, got %q", got)
	}
}
