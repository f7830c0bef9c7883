package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Extract.Output != "function_metadata.json" {
		t.Errorf("Expected default output path, got %q", cfg.Extract.Output)
	}
	if cfg.Extract.Workers != 0 {
		t.Errorf("Expected 0 workers by default, got %d", cfg.Extract.Workers)
	}
	if cfg.Catalog.Path != "funcmeta.db" {
		t.Errorf("Expected default catalog path, got %q", cfg.Catalog.Path)
	}
	if cfg.Addr() != "localhost:7430" {
		t.Errorf("Expected default address 'localhost:7430', got %q", cfg.Addr())
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `project_name: tax-model
extract:
  output: out/meta.json
  workers: 4
catalog:
  path: catalog.db
server:
  host: 0.0.0.0
  port: 9000
`
	if err := os.WriteFile(filepath.Join(dir, "funcmeta.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ProjectName != "tax-model" {
		t.Errorf("Expected project name 'tax-model', got %q", cfg.ProjectName)
	}
	if cfg.Extract.Output != "out/meta.json" {
		t.Errorf("Expected output 'out/meta.json', got %q", cfg.Extract.Output)
	}
	if cfg.Extract.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Extract.Workers)
	}
	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("Expected address '0.0.0.0:9000', got %q", cfg.Addr())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad port", content: "server:\n  port: 70000\n"},
		{name: "negative workers", content: "extract:\n  workers: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "funcmeta.yml"), []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			chdir(t, dir)

			if _, err := Load(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}
