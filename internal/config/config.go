package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelview/internal/colormap"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/viewport"
)

const (
	DefaultWidth       = 960
	DefaultHeight      = 640
	DefaultIterations  = 1024
	DefaultMaxFPS      = 10.0
	DefaultPalette     = "turbo"
	DefaultAddr        = ":12345"
	DefaultJPEGQuality = 80
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Width         int          `yaml:"width"`
	Height        int          `yaml:"height"`
	MaxIterations uint32       `yaml:"max_iterations"`
	Rate          float64      `yaml:"rate"`
	MaxFPS        float64      `yaml:"max_fps"`
	CenterX       float64      `yaml:"center_x"`
	CenterY       float64      `yaml:"center_y"`
	Scale         float64      `yaml:"scale"`
	Backend       string       `yaml:"backend"`
	Grid          GridConfig   `yaml:"grid"`
	Palette       string       `yaml:"palette"`
	ColorScale    uint32       `yaml:"color_scale"`
	Log           LogConfig    `yaml:"log"`
	Server        ServerConfig `yaml:"server"`
}

// GridConfig sizes the compute grid. Zero on both axes picks a per-backend
// default.
type GridConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	JPEGQuality int    `yaml:"jpeg_quality"`
	// StreamFPS paces /video_feed; zero follows MaxFPS.
	StreamFPS float64 `yaml:"stream_fps"`
	HUD       bool    `yaml:"hud"`
}

func DefaultConfig() *Config {
	home := viewport.Default()
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		MaxIterations: DefaultIterations,
		Rate:          viewport.DefaultRate,
		MaxFPS:        DefaultMaxFPS,
		CenterX:       home.CenterX,
		CenterY:       home.CenterY,
		Scale:         home.Scale,
		Backend:       "auto",
		Palette:       DefaultPalette,
		ColorScale:    colormap.DefaultScale,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			JPEGQuality: DefaultJPEGQuality,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Viewport is the starting viewport, with no motion intents.
func (c *Config) Viewport() viewport.Viewport {
	return viewport.Viewport{CenterX: c.CenterX, CenterY: c.CenterY, Scale: c.Scale}
}

// ApplyPreset moves the starting viewport to a named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	c.CenterX, c.CenterY, c.Scale = p.CenterX, p.CenterY, p.Scale
	return nil
}

func (c *Config) ComputeGrid() compute.Grid {
	return compute.Grid{X: c.Grid.X, Y: c.Grid.Y}
}

// StreamFPS is the MJPEG pacing rate.
func (c *Config) StreamFPS() float64 {
	if c.Server.StreamFPS > 0 {
		return c.Server.StreamFPS
	}
	return c.MaxFPS
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return invalid("frame size must be positive, got %dx%d", c.Width, c.Height)
	case c.MaxIterations == 0:
		return invalid("max_iterations must be positive")
	case !(c.Rate > 0 && c.Rate < 1):
		return invalid("rate must be in (0, 1), got %v", c.Rate)
	case c.MaxFPS < 0 || math.IsNaN(c.MaxFPS) || math.IsInf(c.MaxFPS, 0):
		return invalid("max_fps must be a non-negative number, got %v", c.MaxFPS)
	case !finite(c.CenterX) || !finite(c.CenterY):
		return invalid("center must be finite")
	case !(c.Scale > 0) || math.IsInf(c.Scale, 0):
		return invalid("scale must be positive, got %v", c.Scale)
	case !slices.Contains(compute.Names(), c.Backend):
		return invalid("unknown backend %q", c.Backend)
	case c.Grid.X < 0 || c.Grid.Y < 0 || (c.Grid.X == 0) != (c.Grid.Y == 0):
		return invalid("grid must be both zero or both positive, got %dx%d", c.Grid.X, c.Grid.Y)
	case c.Server.JPEGQuality < 1 || c.Server.JPEGQuality > 100:
		return invalid("jpeg_quality must be in [1, 100], got %d", c.Server.JPEGQuality)
	case c.Server.StreamFPS < 0:
		return invalid("stream_fps must be non-negative, got %v", c.Server.StreamFPS)
	}
	if _, err := colormap.ByName(c.Palette); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return invalid("unknown log level %q", c.Log.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return invalid("unknown log format %q", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
