package stream

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/hud"
)

const boundary = "frame"

var errNoFrame = errors.New("stream: no frame rendered yet")

// encode writes f as a JPEG. The published image is never modified; the
// overlay is drawn on a copy.
func (s *Server) encode(w io.Writer, f *frame.Frame, overlay bool) error {
	var img image.Image = f.Image
	if overlay {
		img = hud.Draw(f)
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: s.opts.JPEGQuality})
}

func (s *Server) wantHUD(r *http.Request) bool {
	if v := r.URL.Query().Get("hud"); v != "" {
		on, err := strconv.ParseBool(v)
		return err == nil && on
	}
	return s.opts.HUD
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f := s.source.Latest()
	if f == nil {
		writeError(w, http.StatusServiceUnavailable, errNoFrame)
		return
	}

	var buf bytes.Buffer
	if err := s.encode(&buf, f, s.wantHUD(r)); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Seq", strconv.FormatUint(f.Seq, 10))
	w.Write(buf.Bytes())
}

// handleVideoFeed streams every new frame as one part of a
// multipart/x-mixed-replace response, at most StreamFPS parts a second.
// Frames published faster than that are skipped, never queued.
func (s *Server) handleVideoFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := uuid.NewString()
	overlay := s.wantHUD(r)
	logger := s.logger.With("viewer", viewer)

	var interval time.Duration
	if s.opts.StreamFPS > 0 {
		interval = time.Duration(float64(time.Second) / s.opts.StreamFPS)
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	w.Header().Set("Cache-Control", "no-cache, no-store")
	w.Header().Set("Connection", "close")
	w.WriteHeader(http.StatusOK)
	flush := func() {}
	if fl, ok := w.(http.Flusher); ok {
		flush = fl.Flush
	}
	flush()

	logger.Info("viewer connected", "remote", r.RemoteAddr, "hud", overlay)
	defer logger.Info("viewer disconnected")

	var (
		buf  bytes.Buffer
		last uint64
		sent int
	)
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		f, err := s.source.Wait(ctx, last)
		if err != nil {
			return
		}
		start := time.Now()

		buf.Reset()
		if err := s.encode(&buf, f, overlay); err != nil {
			logger.Error("jpeg encode failed", "seq", f.Seq, "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\nX-Frame-Seq: %d\r\n\r\n", boundary, buf.Len(), f.Seq); err != nil {
			return
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return
		}
		if _, err := io.WriteString(w, "\r\n"); err != nil {
			return
		}
		flush()

		last = f.Seq
		sent++
		if sent == 1 {
			logger.Debug("first part sent", "seq", f.Seq, "bytes", buf.Len())
		}

		remaining := interval - time.Since(start)
		if remaining <= 0 {
			continue
		}
		timer.Reset(remaining)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}
