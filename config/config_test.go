package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOURCES_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.PageSize != 12 {
		t.Fatalf("expected default page size 12, got %d", cfg.PageSize)
	}
	if len(cfg.Sources) != len(defaultSources) {
		t.Fatalf("expected built-in registry, got %d sources", len(cfg.Sources))
	}
	if cfg.Sources[0].File != "cars.json" {
		t.Fatalf("expected cars.json first, got %s", cfg.Sources[0].File)
	}
}

func TestLoad_SourceRegistryOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	registry := `sources:
  - file: custom.json
    adapter: cars
  - file: cargr.json
    adapter: cargr
`
	if err := os.WriteFile(path, []byte(registry), 0644); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	t.Setenv("SOURCES_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("expected 2 sources from registry, got %d", len(cfg.Sources))
	}
	if cfg.Sources[0].File != "custom.json" || cfg.Sources[0].Adapter != "cars" {
		t.Fatalf("unexpected first source %+v", cfg.Sources[0])
	}
	if cfg.Sources[1].Adapter != "cargr" {
		t.Fatalf("unexpected second source %+v", cfg.Sources[1])
	}
}

func TestLoad_BrokenRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	if err := os.WriteFile(path, []byte("sources: [not: valid"), 0644); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	t.Setenv("SOURCES_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a broken registry")
	}
}
