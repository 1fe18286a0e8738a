package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/logging"
	"github.com/san-kum/mandelview/internal/snapshot"
	"github.com/san-kum/mandelview/internal/stream"
	"github.com/san-kum/mandelview/internal/tui"
)

var (
	configFile string
	preset     string
	backend    string
	width      int
	height     int
	iterations uint32
	maxFPS     float64
	palette    string
	logLevel   string
	logFormat  string
	// serve
	addr        string
	hud         bool
	streamFPS   float64
	jpegQuality int
	// snapshot
	outDir  string
	name    string
	centerX float64
	centerY float64
	scale   float64
	// bench
	benchFrames int
)

// extraCommands is extended by build-tagged files.
var extraCommands []*cobra.Command

func main() {
	rootCmd := &cobra.Command{
		Use:          "mandelview",
		Short:        "real-time mandelbrot explorer",
		SilenceUsage: true,
		RunE:         runServe,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start at a named preset")
	pf.StringVar(&backend, "backend", "auto", "compute backend (auto, cpu, cuda)")
	pf.IntVar(&width, "width", config.DefaultWidth, "frame width")
	pf.IntVar(&height, "height", config.DefaultHeight, "frame height")
	pf.Uint32Var(&iterations, "iterations", config.DefaultIterations, "maximum escape iterations")
	pf.Float64Var(&maxFPS, "fps", config.DefaultMaxFPS, "maximum frame rate")
	pf.StringVar(&palette, "palette", config.DefaultPalette, "colour palette")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "render and stream to browsers",
		RunE:  runServe,
	}
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
		c.Flags().BoolVar(&hud, "hud", false, "overlay viewport info on streamed frames")
		c.Flags().Float64Var(&streamFPS, "stream-fps", 0, "video feed rate (0 follows --fps)")
		c.Flags().IntVar(&jpegQuality, "jpeg-quality", config.DefaultJPEGQuality, "jpeg quality")
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render with a terminal preview and controls",
		RunE:  runTUI,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to png",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	snapshotCmd.Flags().StringVar(&name, "name", "", "file name without extension")
	snapshotCmd.Flags().Float64Var(&centerX, "center-x", -1, "real part of the centre")
	snapshotCmd.Flags().Float64Var(&centerY, "center-y", 0, "imaginary part of the centre")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 2, "horizontal half-width of the view")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the compute backend",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 20, "frames per preset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCENTER\tSCALE\tDESCRIPTION")
			for _, n := range config.ListPresets() {
				p, _ := config.GetPreset(n)
				fmt.Fprintf(w, "%s\t(%g, %g)\t%g\t%s\n", n, p.CenterX, p.CenterY, p.Scale, p.Description)
			}
			return w.Flush()
		},
	}

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list compute backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tAVAILABLE\tDETAIL")
			for _, n := range compute.Names() {
				b, err := compute.Select(n, compute.Grid{})
				if err != nil {
					fmt.Fprintf(w, "%s\tno\t%v\n", n, err)
					continue
				}
				fmt.Fprintf(w, "%s\tyes\t%s\n", n, b.Name())
				b.Cleanup()
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(serveCmd, tuiCmd, snapshotCmd, benchCmd, presetsCmd, backendsCmd)
	rootCmd.AddCommand(extraCommands...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	srv := stream.NewServer(p.buffer, p.state, p.stats, stream.Options{
		JPEGQuality: cfg.Server.JPEGQuality,
		StreamFPS:   cfg.StreamFPS(),
		HUD:         cfg.Server.HUD,
		Backend:     p.backend.Name(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Logger:      logger,
	})

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return p.loop.Run(ctx) })
	g.Go(func() error { return srv.ListenAndServe(ctx, cfg.Server.Addr) })

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("shut down")
		return nil
	}
	if err != nil {
		logger.Error("stopped", "error", err)
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, logging.Nop())
	if err != nil {
		return err
	}
	defer p.Close()

	m := tui.NewModel(p.buffer, p.state, p.stats, p.backend.Name())
	return tui.Run(cmd.Context(), m, p.loop.Run)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("center-x") {
		cfg.CenterX = centerX
	}
	if flags.Changed("center-y") {
		cfg.CenterY = centerY
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := newPipeline(cfg, logging.Nop())
	if err != nil {
		return err
	}
	defer p.Close()

	f, err := p.loop.Step(cmd.Context())
	if err != nil {
		return err
	}

	st := snapshot.New(outDir)
	if err := st.Init(); err != nil {
		return err
	}
	pngPath, metaPath, err := st.Save(name, f, snapshot.Info{
		MaxIterations: cfg.MaxIterations,
		Palette:       cfg.Palette,
		Backend:       p.backend.Name(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("rendered %dx%d in %v on %s\n", cfg.Width, cfg.Height, f.RenderTime, p.backend.Name())
	fmt.Printf("  %s\n  %s\n", pngPath, metaPath)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, logging.Nop())
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Printf("benchmarking %s at %dx%d, %d iterations\n\n", p.backend.Name(), cfg.Width, cfg.Height, cfg.MaxIterations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFRAMES\tTOTAL\tMEAN\tFPS")

	for _, n := range []string{"home", "seahorse-valley", "spiral-minibrot"} {
		pr, _ := config.GetPreset(n)
		vp := pr.Viewport()

		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			if _, err := p.renderer.Render(cmd.Context(), vp); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		mean := elapsed / time.Duration(max(benchFrames, 1))

		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.1f\n",
			n, benchFrames, elapsed.Round(time.Millisecond), mean.Round(10*time.Microsecond),
			float64(benchFrames)/elapsed.Seconds())
	}

	return w.Flush()
}
