package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `python: "3.12"
cache_dir: /var/cache/pyrun
rewrite: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Python != "3.12" {
		t.Errorf("Python = %q, want 3.12", cfg.Python)
	}
	if cfg.CacheDir != "/var/cache/pyrun" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Rewrite == nil || *cfg.Rewrite {
		t.Errorf("Rewrite = %v, want false", cfg.Rewrite)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for explicit missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("python: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}
