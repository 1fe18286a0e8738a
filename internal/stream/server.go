// Package stream serves the render loop to browsers: an MJPEG video feed,
// single-frame snapshots, render statistics and the control endpoints that
// feed key presses into the shared viewport.
//
// Every viewer sees the same view. Commands from any connection are applied
// to the one [viewport.State]; the feed only ever reads published frames.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/logging"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/viewport"
)

const (
	DefaultJPEGQuality = 80
	shutdownTimeout    = 5 * time.Second
)

type Options struct {
	// JPEGQuality is the encoder quality in [1, 100].
	JPEGQuality int
	// StreamFPS caps how often /video_feed sends a part. Zero sends every
	// new frame as soon as it is published.
	StreamFPS float64
	// HUD overlays the viewport on every streamed frame, as if each request
	// carried ?hud=1.
	HUD bool
	// Backend is reported by /stats.
	Backend string
	Width   int
	Height  int
	Logger  *slog.Logger
}

type Server struct {
	source frame.Source
	state  *viewport.State
	stats  *metrics.FrameStats
	opts   Options
	logger *slog.Logger
	router chi.Router
}

// NewServer wires the HTTP routes. stats may be nil.
func NewServer(source frame.Source, state *viewport.State, stats *metrics.FrameStats, opts Options) *Server {
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Server{
		source: source,
		state:  state,
		stats:  stats,
		opts:   opts,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/video_feed", s.handleVideoFeed)
	r.Get("/frame.jpg", s.handleFrame)
	r.Get("/stats", s.handleStats)
	r.Post("/keypress", s.handleKeypress)
	r.Post("/preset/{name}", s.handlePreset)
	r.Get("/ws", s.handleWebsocket)
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx ends, then shuts down. Open
// streams see their request context canceled and return.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stream server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("stream server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type statusResponse struct {
	Seq          uint64            `json:"seq"`
	Frames       uint64            `json:"frames"`
	FPS          float64           `json:"fps"`
	MeanRenderMs float64           `json:"mean_render_ms"`
	LastRenderMs float64           `json:"last_render_ms"`
	Viewport     viewport.Viewport `json:"viewport"`
	Move         string            `json:"move"`
	Zoom         string            `json:"zoom"`
	Backend      string            `json:"backend"`
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	vp := s.state.Snapshot()
	resp := statusResponse{
		Viewport: vp,
		Move:     vp.Move.String(),
		Zoom:     vp.Zoom.String(),
		Backend:  s.opts.Backend,
	}
	if f := s.source.Latest(); f != nil {
		resp.Seq = f.Seq
	}
	if s.stats != nil {
		st := s.stats.Snapshot()
		resp.Frames = st.Frames
		resp.FPS = st.FPS
		resp.MeanRenderMs = float64(st.MeanRender) / float64(time.Millisecond)
		resp.LastRenderMs = float64(st.LastRender) / float64(time.Millisecond)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
