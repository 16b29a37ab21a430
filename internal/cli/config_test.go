package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "svg" {
		t.Errorf("default formats = %v, want [svg]", cfg.Render.Formats)
	}
	if cfg.Render.Zoom != 1.0 {
		t.Errorf("default zoom = %v, want 1.0", cfg.Render.Zoom)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "wiretrace.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "svg" {
		t.Errorf("missing config should yield defaults, got %v", cfg.Render.Formats)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiretrace.toml")
	content := `
[render]
formats = ["svg", "png"]
zoom = 1.5
strict = true
output = "dist"

[serve]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v, want [svg png]", cfg.Render.Formats)
	}
	if cfg.Render.Zoom != 1.5 {
		t.Errorf("zoom = %v, want 1.5", cfg.Render.Zoom)
	}
	if !cfg.Render.Strict {
		t.Error("strict should be true")
	}
	if cfg.Render.Output != "dist" {
		t.Errorf("output = %q, want dist", cfg.Render.Output)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Serve.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiretrace.toml")
	if err := os.WriteFile(path, []byte("[render\nbroken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiretrace.toml")
	if err := os.WriteFile(path, []byte("[render]\nformats = [\"tiff\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown format in config should error")
	}
}
