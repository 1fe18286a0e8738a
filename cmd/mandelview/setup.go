package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/san-kum/mandelview/internal/colormap"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/render"
	"github.com/san-kum/mandelview/internal/viewport"
)

// loadConfig builds the configuration: defaults, then the config file, then
// the preset, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = iterations
	}
	if flags.Changed("fps") {
		cfg.MaxFPS = maxFPS
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if flags.Changed("hud") {
		cfg.Server.HUD = hud
	}
	if flags.Changed("stream-fps") {
		cfg.Server.StreamFPS = streamFPS
	}
	if flags.Changed("jpeg-quality") {
		cfg.Server.JPEGQuality = jpegQuality
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipeline is the render core shared by every front end.
type pipeline struct {
	state    *viewport.State
	buffer   *frame.Buffer
	backend  compute.Backend
	renderer *render.Renderer
	loop     *render.Loop
	stats    *metrics.FrameStats
}

func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	backend, err := compute.Select(cfg.Backend, cfg.ComputeGrid())
	if err != nil {
		return nil, err
	}
	pal, err := colormap.ByName(cfg.Palette)
	if err != nil {
		backend.Cleanup()
		return nil, err
	}
	logger.Info("compute backend selected", "backend", backend.Name())

	p := &pipeline{
		state:   viewport.New(cfg.Viewport(), cfg.Rate),
		buffer:  frame.NewBuffer(),
		backend: backend,
		stats:   metrics.NewFrameStats(metrics.DefaultWindow),
	}
	p.renderer = render.NewRenderer(backend, colormap.NewColorizer(pal, cfg.ColorScale), cfg.Width, cfg.Height, cfg.MaxIterations)
	p.loop = render.NewLoop(p.state, p.renderer, p.buffer, render.Options{MaxFPS: cfg.MaxFPS, Logger: logger})
	p.loop.AddObserver(p.stats)
	return p, nil
}

func (p *pipeline) Close() {
	p.backend.Cleanup()
}
