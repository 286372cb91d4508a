package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.FrameRate != 30.0 {
		t.Errorf("expected frame rate 30, got %g", cfg.FrameRate)
	}
	if cfg.PixelKind != "byte" {
		t.Errorf("expected pixel kind byte, got %q", cfg.PixelKind)
	}
	if cfg.Sheet.Columns != 4 {
		t.Errorf("expected 4 sheet columns, got %d", cfg.Sheet.Columns)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imageseq.yaml")
	content := []byte("extension: png\nframe_rate: 24\nsheet:\n  columns: 6\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Extension != "png" {
		t.Errorf("expected extension png, got %q", cfg.Extension)
	}
	if cfg.FrameRate != 24 {
		t.Errorf("expected frame rate 24, got %g", cfg.FrameRate)
	}
	if cfg.Sheet.Columns != 6 {
		t.Errorf("expected 6 sheet columns, got %d", cfg.Sheet.Columns)
	}
	// Untouched values keep their defaults.
	if cfg.PixelKind != "byte" {
		t.Errorf("expected default pixel kind, got %q", cfg.PixelKind)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/imageseq.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.Color
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"00ff00", color.RGBA{G: 255, A: 255}},
		{"#202020", color.RGBA{R: 32, G: 32, B: 32, A: 255}},
		{"", color.Black},
		{"xyz", color.Black},
	}

	for _, tt := range tests {
		if got := ParseColor(tt.input); got != tt.expected {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}
