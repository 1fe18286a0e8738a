//go:build gui

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/san-kum/mandelview/internal/gui"
	"github.com/san-kum/mandelview/internal/logging"
)

func init() {
	extraCommands = append(extraCommands, &cobra.Command{
		Use:   "gui",
		Short: "render in a native window",
		RunE:  runGUI,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, logging.Nop())
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		err := p.loop.Run(ctx)
		loopErr <- err
		// A failed loop closes the window.
		cancel()
	}()

	app := gui.NewApp(p.buffer, p.state, p.stats, cfg.Width, cfg.Height)
	app.Backend = p.backend.Name()
	gui.Run(ctx, app)
	cancel()

	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
