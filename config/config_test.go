package config_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ribbons/config"
)

func TestDefaultMatchesPinkTheme(t *testing.T) {
	cfg := config.Default()

	if cfg.Columns != 40 {
		t.Fatalf("unexpected columns: got %d want 40", cfg.Columns)
	}
	if cfg.PointsPerRibbon != 100 {
		t.Fatalf("unexpected points per ribbon: got %d want 100", cfg.PointsPerRibbon)
	}
	if len(cfg.Colors) != 5 || cfg.Colors[0] != "#FFC0CB" || cfg.Colors[4] != "#C71585" {
		t.Fatalf("unexpected colors: %v", cfg.Colors)
	}
	if cfg.ColorMode != "lch" {
		t.Fatalf("unexpected color mode: %q", cfg.ColorMode)
	}
	if cfg.Darken != -2 {
		t.Fatalf("unexpected darken: %v", cfg.Darken)
	}
	if cfg.Rotation != math.Pi/3 {
		t.Fatalf("unexpected rotation: %v", cfg.Rotation)
	}
	if cfg.TimeScale != 0.1 {
		t.Fatalf("unexpected time scale: %v", cfg.TimeScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadWithoutDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != config.DefaultPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, config.DefaultPath)
	}
	if exists {
		t.Fatal("expected default config file to be absent")
	}
	if cfg.Columns != config.Default().Columns {
		t.Fatalf("unexpected columns: %d", cfg.Columns)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ribbons.toml")
	data := `
columns = 12
points_per_ribbon = 8
colors = [" #000000 ", "white"]
color_mode = "RGB"
darken = 1.5
time_scale = 0.25

[window]
width = 800
height = 600
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != path || !exists {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Columns != 12 || cfg.PointsPerRibbon != 8 {
		t.Fatalf("unexpected grid: %dx%d", cfg.Columns, cfg.PointsPerRibbon)
	}
	if len(cfg.Colors) != 2 || cfg.Colors[0] != "#000000" {
		t.Fatalf("expected trimmed colors, got %v", cfg.Colors)
	}
	if cfg.ColorMode != "rgb" {
		t.Fatalf("expected normalized mode, got %q", cfg.ColorMode)
	}
	if cfg.Darken != 1.5 || cfg.TimeScale != 0.25 {
		t.Fatalf("unexpected darken/time scale: %v %v", cfg.Darken, cfg.TimeScale)
	}
	if cfg.Rotation != math.Pi/3 {
		t.Fatalf("expected default rotation to survive, got %v", cfg.Rotation)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Fatalf("unexpected window: %+v", cfg.Window)
	}
	if cfg.Window.Title != "ribbons" {
		t.Fatalf("expected default title, got %q", cfg.Window.Title)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ribbons.toml")
	if err := os.WriteFile(path, []byte("colums = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidateRejectsDegenerateRibbons(t *testing.T) {
	cfg := config.Default()
	cfg.PointsPerRibbon = 1

	err := cfg.Validate()
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "points_per_ribbon") {
		t.Fatalf("expected points_per_ribbon in error, got %v", err)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Columns = 0
	cfg.Colors = nil
	cfg.ColorMode = "cmyk"
	cfg.Background = "nope"
	cfg.TimeScale = math.Inf(1)
	cfg.PointsPerRibbon = config.MaxPointsPerRibbon + 1

	err := cfg.Validate()
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{"columns", "colors", "background", "time_scale", "points_per_ribbon"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Columns = 7

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("encoded config is not valid TOML: %v", err)
	}

	var decoded config.Config
	if err := config.Decode(data, &decoded); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if decoded.Columns != 7 || decoded.Window.Title != cfg.Window.Title {
		t.Fatalf("unexpected decoded config: %+v", decoded)
	}
}
