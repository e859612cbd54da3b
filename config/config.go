// Package config loads the engine's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"quad-engine/core"
)

// Config is the root of an engine.yml file. Zero fields fall back to
// Default when loaded.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Assets   AssetsConfig   `yaml:"assets"`
	Fonts    []FontConfig   `yaml:"fonts"`
	Log      LogConfig      `yaml:"log"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	VSync      *bool  `yaml:"vsync"` // pointer to distinguish unset vs false
	Resizable  *bool  `yaml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type RendererConfig struct {
	MaxQuads     int        `yaml:"max_quads"`
	TextureSlots int        `yaml:"texture_slots"`
	ClearColor   [4]float32 `yaml:"clear_color"`
}

type AssetsConfig struct {
	Root string `yaml:"root"`
}

// FontConfig names a font to load at startup. An empty Path loads the
// built-in Go Regular face.
type FontConfig struct {
	Name string  `yaml:"name"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	vsync, resizable := true, true
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Title",
			VSync:     &vsync,
			Resizable: &resizable,
		},
		Renderer: RendererConfig{
			MaxQuads:     1000,
			TextureSlots: 32,
			ClearColor:   [4]float32{0, 0, 0, 1},
		},
		Fonts: []FontConfig{{Name: "default", Size: 32}},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path. A missing file yields Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Renderer.MaxQuads <= 0 {
		errs = append(errs, fmt.Errorf("renderer.max_quads must be positive, got %d", c.Renderer.MaxQuads))
	}
	if c.Renderer.TextureSlots < 2 || c.Renderer.TextureSlots > 32 {
		errs = append(errs, fmt.Errorf("renderer.texture_slots must be in [2, 32], got %d", c.Renderer.TextureSlots))
	}
	for i, f := range c.Fonts {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("fonts[%d]: name is required", i))
		}
		if f.Size <= 0 {
			errs = append(errs, fmt.Errorf("fonts[%d]: size must be positive", i))
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) ClearColor() core.Color {
	cc := c.Renderer.ClearColor
	return core.RGBA(cc[0], cc[1], cc[2], cc[3])
}

// Logger builds a text logger on stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	return c.NewLogger(os.Stderr)
}

func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
