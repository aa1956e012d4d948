package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/bibfront/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "bibfront", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCatalogPath(t *testing.T) {
	got := CatalogPath("content/papers")
	want := filepath.Join("content/papers", ".bibfront", "catalog.db")
	if got != want {
		t.Errorf("CatalogPath() = %q, want %q", got, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	ResetCache()
	defer ResetCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIBFRONT_OUTPUT_DIR", "")
	t.Setenv("BIBFRONT_MAILTO", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "" || cfg.MailTo != "" || cfg.KeepGoing {
		t.Errorf("Load() on missing file = %+v, want zero config", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ResetCache()
	defer ResetCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIBFRONT_OUTPUT_DIR", "")
	t.Setenv("BIBFRONT_MAILTO", "")

	want := &Config{
		OutputDir: "content/publications",
		MailTo:    "me@example.org",
		KeepGoing: true,
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.OutputDir != want.OutputDir || got.MailTo != want.MailTo || got.KeepGoing != want.KeepGoing {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	ResetCache()
	defer ResetCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Save(&Config{OutputDir: "from-file", MailTo: "file@example.org"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("BIBFRONT_OUTPUT_DIR", "from-env")
	t.Setenv("BIBFRONT_MAILTO", "env@example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, want env override", cfg.OutputDir)
	}
	if cfg.MailTo != "env@example.org" {
		t.Errorf("MailTo = %q, want env override", cfg.MailTo)
	}
}

func TestLoad_Caches(t *testing.T) {
	ResetCache()
	defer ResetCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIBFRONT_OUTPUT_DIR", "")
	t.Setenv("BIBFRONT_MAILTO", "")

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Errorf("Load() should return the cached config")
	}
}
