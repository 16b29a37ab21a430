package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		format      string
		formatCount int
		want        string
	}{
		{"default dir", "", "svg", 1, "circuit-diagram.svg"},
		{"explicit file", "out/schematic.svg", "svg", 1, "out/schematic.svg"},
		{"dir for single format", "out", "svg", 1, filepath.Join("out", "circuit-diagram.svg")},
		{"dir for multiple formats", "out", "png", 2, filepath.Join("out", "circuit-diagram.png")},
		{"file ignored for multiple formats", "out", "dot", 2, filepath.Join("out", "circuit-netlist.dot")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, tt.format, tt.formatCount); got != tt.want {
				t.Errorf("artifactPath(%q, %q, %d) = %q, want %q",
					tt.output, tt.format, tt.formatCount, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.txt")
	if err := os.WriteFile(path, []byte("R1: resistor"), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput error: %v", err)
	}
	if !strings.Contains(text, "R1") {
		t.Errorf("readInput = %q, want circuit text", text)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	if _, err := readInput(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("readInput should fail for a missing file")
	}
}
