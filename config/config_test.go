package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quad-engine/core"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 || cfg.Window.Title != "Title" {
		t.Errorf("window = %+v", cfg.Window)
	}
	if !*cfg.Window.VSync {
		t.Errorf("vsync should default on")
	}
	if cfg.Renderer.MaxQuads != 1000 || cfg.Renderer.TextureSlots != 32 {
		t.Errorf("renderer = %+v", cfg.Renderer)
	}
	if cfg.ClearColor() != core.ColorBlack {
		t.Errorf("clear color = %v", cfg.ClearColor())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	src := `
window:
  width: 800
  height: 600
  vsync: false
renderer:
  max_quads: 250
assets:
  root: ./assets
log:
  level: debug
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("size = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Title" {
		t.Errorf("title should keep its default, got %q", cfg.Window.Title)
	}
	if *cfg.Window.VSync {
		t.Errorf("vsync should be off")
	}
	if cfg.Renderer.MaxQuads != 250 || cfg.Renderer.TextureSlots != 32 {
		t.Errorf("renderer = %+v", cfg.Renderer)
	}
	if cfg.Assets.Root != "./assets" {
		t.Errorf("assets root = %q", cfg.Assets.Root)
	}
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown field": "window:\n  colour: red\n",
		"bad slots":     "renderer:\n  texture_slots: 64\n",
		"bad size":      "window:\n  width: 0\n",
		"bad level":     "log:\n  level: loud\n",
		"font no name":  "fonts:\n  - size: 12\n",
		"not yaml":      "window: [1, 2\n",
	}
	for name, src := range tests {
		if _, err := Parse(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("empty document should yield defaults")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("missing file should yield defaults")
	}

	path := filepath.Join(dir, "engine.yml")
	if err := os.WriteFile(path, []byte("window:\n  title: Demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "Demo" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("log output = %q", out)
	}
}
