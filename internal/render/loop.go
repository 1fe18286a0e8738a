// Package render drives the frame pipeline: advance the viewport, evaluate
// the fractal, colour it and publish it, at most MaxFPS times a second.
//
// # Failure
//
// A failed cycle ends [Loop.Run] with a [*CycleError]. There are no retries
// and no partial frames; the last good frame stays readable from the
// buffer while the hosting process shuts down.
package render

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/viewport"
)

type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	}
	return "unknown"
}

// Observer is notified after every published frame, on the loop goroutine.
type Observer interface {
	OnFrame(f *frame.Frame)
}

type Options struct {
	// MaxFPS caps the frame rate. Zero or negative disables pacing.
	MaxFPS float64
	Logger *slog.Logger
}

type Loop struct {
	state     *viewport.State
	renderer  *Renderer
	out       *frame.Buffer
	interval  time.Duration
	logger    *slog.Logger
	observers []Observer
	status    atomic.Int32
	clamps    int
}

func NewLoop(state *viewport.State, renderer *Renderer, out *frame.Buffer, opts Options) *Loop {
	var interval time.Duration
	if opts.MaxFPS > 0 {
		interval = time.Duration(float64(time.Second) / opts.MaxFPS)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		state:     state,
		renderer:  renderer,
		out:       out,
		interval:  interval,
		logger:    logger,
		observers: make([]Observer, 0),
	}
}

// AddObserver must be called before Run.
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Status() Status { return Status(l.status.Load()) }

func (l *Loop) Interval() time.Duration { return l.interval }

// Run renders frames until ctx ends or a cycle fails. It returns ctx.Err()
// on shutdown and a *CycleError on failure. A loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.status.CompareAndSwap(int32(StatusIdle), int32(StatusRunning)) {
		return ErrLoopRunning
	}
	defer l.status.Store(int32(StatusStopped))

	w, h := l.renderer.Size()
	l.logger.Info("render loop started",
		"backend", l.renderer.Backend().Name(),
		"width", w, "height", h,
		"max_iterations", l.renderer.MaxIterations(),
		"interval", l.interval)

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		if _, err := l.Step(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			l.logger.Error("render cycle failed", "error", err)
			return err
		}

		remaining := l.interval - time.Since(start)
		if remaining <= 0 {
			continue
		}
		timer.Reset(remaining)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Step runs one unpaced cycle: advance, render, publish, notify.
func (l *Loop) Step(ctx context.Context) (*frame.Frame, error) {
	vp := l.state.Advance()
	if n := l.state.Clamps(); n != l.clamps {
		l.clamps = n
		l.logger.Warn("viewport scale clamped", "scale", vp.Scale)
	}

	start := time.Now()
	img, err := l.renderer.Render(ctx, vp)
	if err != nil {
		return nil, &CycleError{Seq: l.out.Seq() + 1, Viewport: vp, Err: err}
	}

	f := &frame.Frame{
		Image:      img,
		Viewport:   vp,
		RenderedAt: time.Now(),
		RenderTime: time.Since(start),
	}
	l.out.Publish(f)

	for _, o := range l.observers {
		o.OnFrame(f)
	}

	l.logger.Debug("frame published",
		"seq", f.Seq,
		"render_ms", float64(f.RenderTime)/float64(time.Millisecond),
		"scale", vp.Scale,
		"center_x", vp.CenterX,
		"center_y", vp.CenterY)
	return f, nil
}
