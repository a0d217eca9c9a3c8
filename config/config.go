// Package config holds the immutable settings the background is built from.
//
// Settings come from Default and may be overridden by a TOML file.
// A Config is normalized and validated once by Load and never mutated after.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"ribbons/misc"
	"ribbons/palette"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// DefaultPath is tried when no path is given. Its absence is not an error.
const DefaultPath = "ribbons.toml"

// MaxPointsPerRibbon keeps 2 vertices per point addressable with uint16 indices.
const MaxPointsPerRibbon = 1 << 15

type Config struct {
	// Number of ribbons, one per grid column.
	Columns int `toml:"columns"`
	// Vertical resolution of each ribbon.
	PointsPerRibbon int `toml:"points_per_ribbon"`
	// Ordered CSS color stops of the shared gradient.
	Colors []string `toml:"colors"`
	// Color space the gradient interpolates in (rgb, hsv, lab, lch, luv).
	ColorMode string `toml:"color_mode"`
	// Lab lightness offset giving a ribbon's second color. Negative brightens.
	Darken float64 `toml:"darken"`
	// Rotation applied to every ribbon, in radians.
	Rotation float64 `toml:"rotation"`
	// Multiplier from seconds to shader animation time.
	TimeScale float64 `toml:"time_scale"`
	// Clear color behind the ribbons.
	Background string `toml:"background"`

	Window Window `toml:"window"`
}

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
}

// Default returns the settings of the pink theme.
func Default() Config {
	return Config{
		Columns:         40,
		PointsPerRibbon: 100,
		Colors:          []string{"#FFC0CB", "#FF69B4", "#FF1493", "#DB7093", "#C71585"},
		ColorMode:       string(palette.ModeLCH),
		Darken:          -2.0,
		Rotation:        math.Pi / 3,
		TimeScale:       0.1,
		Background:      "#FFFFFF",
		Window: Window{
			Width:     960,
			Height:    640,
			Title:     "ribbons",
			VSync:     true,
			Resizable: true,
		},
	}
}

// Load reads path on top of Default.
//
// An empty path means DefaultPath, which may be missing.
// It returns the config, the resolved path and whether the file existed.
func Load(path string) (Config, string, bool, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	resolved := DefaultPath
	if explicit {
		resolved = strings.TrimSpace(path)
	}

	exists, err := misc.CheckFileExists(resolved)
	if err != nil {
		return Config{}, resolved, false, fmt.Errorf("check config %s: %w", resolved, err)
	}

	if !exists {
		if explicit {
			return Config{}, resolved, false, fmt.Errorf("config file %s does not exist", resolved)
		}
	} else {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return Config{}, resolved, true, fmt.Errorf("read config %s: %w", resolved, err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, resolved, true, fmt.Errorf("decode config %s: %w", resolved, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, resolved, exists, err
	}

	return cfg, resolved, exists, nil
}

// Decode overlays TOML data onto cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) normalize() {
	for i, s := range c.Colors {
		c.Colors[i] = strings.TrimSpace(s)
	}
	c.ColorMode = strings.ToLower(strings.TrimSpace(c.ColorMode))
	if c.ColorMode == "" {
		c.ColorMode = string(palette.ModeLCH)
	}
	c.Background = strings.TrimSpace(c.Background)
	if c.Window.Title == "" {
		c.Window.Title = Default().Window.Title
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be positive, got %d", c.Columns))
	}
	if c.PointsPerRibbon < 2 {
		errs = append(errs, fmt.Errorf("points_per_ribbon must be at least 2, got %d", c.PointsPerRibbon))
	} else if c.PointsPerRibbon > MaxPointsPerRibbon {
		errs = append(errs, fmt.Errorf("points_per_ribbon must be at most %d, got %d", MaxPointsPerRibbon, c.PointsPerRibbon))
	}
	if _, err := c.Gradient(); err != nil {
		errs = append(errs, fmt.Errorf("colors: %w", err))
	}
	if c.Background != "" {
		if _, err := palette.ParseColor(c.Background); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"darken", c.Darken},
		{"rotation", c.Rotation},
		{"time_scale", c.TimeScale},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite", f.name))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Gradient builds the shared palette from Colors and ColorMode.
func (c Config) Gradient() (*palette.Gradient, error) {
	mode, err := palette.ParseMode(c.ColorMode)
	if err != nil {
		return nil, err
	}
	return palette.New(c.Colors, mode)
}
