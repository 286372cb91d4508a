// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for imageseq.
type Config struct {
	// Sequence
	Extension string  `yaml:"extension"`
	MaxFrames int     `yaml:"max_frames"`
	FrameRate float64 `yaml:"frame_rate"`
	Threaded  bool    `yaml:"threaded"`
	PixelKind string  `yaml:"pixel_kind"`

	// Texture filtering
	MinFilter string `yaml:"min_filter"`
	MagFilter string `yaml:"mag_filter"`

	// Contact sheet
	Sheet SheetConfig `yaml:"sheet"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// SheetConfig represents contact sheet rendering settings.
type SheetConfig struct {
	Columns         int    `yaml:"columns"`
	CellWidth       int    `yaml:"cell_width"`
	Gap             int    `yaml:"gap"`
	Padding         int    `yaml:"padding"`
	BackgroundColor string `yaml:"background_color"`
	Labels          bool   `yaml:"labels"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FrameRate: 30.0,
		PixelKind: "byte",
		MinFilter: "linear",
		MagFilter: "linear",

		Sheet: SheetConfig{
			Columns:         4,
			CellWidth:       192,
			Gap:             8,
			Padding:         8,
			BackgroundColor: "#202020",
			Labels:          true,
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[i*2])<<4 | hexValue(hex[i*2+1])
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
