package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"promptatlas/internal/platform/config"
)

func TestNewDefaultsAnchoredAtWorkspace(t *testing.T) {
	ws := t.TempDir()
	t.Setenv("PROMPTATLAS_CATALOGUE", "")
	t.Setenv("PROMPTATLAS_DB", "")
	t.Setenv("PROMPTATLAS_LOG_LEVEL", "")
	t.Setenv("PROMPTATLAS_LOG_FORMAT", "")

	cfg, err := config.New(ws)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.CataloguePath != filepath.Join(ws, "data", "techniques.json") {
		t.Fatalf("unexpected catalogue path %s", cfg.CataloguePath)
	}
	if cfg.DBPath != filepath.Join(ws, ".promptatlas", "promptatlas.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestNewFileThenEnvPrecedence(t *testing.T) {
	ws := t.TempDir()
	if err := os.MkdirAll(filepath.Join(ws, ".promptatlas"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw := "catalogue_path: custom/catalogue.json\nlog:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(filepath.Join(ws, ".promptatlas", "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PROMPTATLAS_CATALOGUE", "")
	t.Setenv("PROMPTATLAS_DB", "")
	t.Setenv("PROMPTATLAS_LOG_LEVEL", "warn")
	t.Setenv("PROMPTATLAS_LOG_FORMAT", "")

	cfg, err := config.New(ws)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.CataloguePath != filepath.Join(ws, "custom", "catalogue.json") {
		t.Fatalf("file value not applied: %s", cfg.CataloguePath)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env override not applied: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("file format not applied: %s", cfg.Log.Format)
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty workspace should fail")
	}
	ws := t.TempDir()
	t.Setenv("PROMPTATLAS_LOG_LEVEL", "loud")
	if _, err := config.New(ws); err == nil {
		t.Fatalf("unknown log level should fail")
	}
}

func TestWithOverrides(t *testing.T) {
	ws := t.TempDir()
	t.Setenv("PROMPTATLAS_LOG_LEVEL", "")
	t.Setenv("PROMPTATLAS_LOG_FORMAT", "")
	cfg, err := config.New(ws)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if got := cfg.WithCatalogue("").CataloguePath; got != cfg.CataloguePath {
		t.Fatalf("blank override should keep path, got %s", got)
	}
	if got := cfg.WithCatalogue("/tmp/x.json").CataloguePath; got != "/tmp/x.json" {
		t.Fatalf("override not applied, got %s", got)
	}
	if _, err := cfg.WithLog("", "xml"); err == nil {
		t.Fatalf("unknown format should fail")
	}
}
