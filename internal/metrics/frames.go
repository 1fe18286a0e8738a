// Package metrics collects frame timing from the render loop for status
// displays.
package metrics

import (
	"sync"
	"time"

	"github.com/san-kum/mandelview/internal/frame"
)

const DefaultWindow = 120

// Stats is a point-in-time summary of recent frames.
type Stats struct {
	Frames     uint64        `json:"frames"`
	LastSeq    uint64        `json:"seq"`
	FPS        float64       `json:"fps"`
	MeanRender time.Duration `json:"-"`
	LastRender time.Duration `json:"-"`
	// RenderMs holds the render times of the window, oldest first.
	RenderMs []float64 `json:"-"`
}

// FrameStats observes published frames. It keeps a rolling window of
// render durations and inter-frame intervals and is safe for concurrent
// use.
type FrameStats struct {
	mu        sync.Mutex
	window    int
	frames    uint64
	lastSeq   uint64
	lastAt    time.Time
	renders   []time.Duration
	intervals []time.Duration
}

func NewFrameStats(window int) *FrameStats {
	if window <= 0 {
		window = DefaultWindow
	}
	return &FrameStats{
		window:    window,
		renders:   make([]time.Duration, 0, window),
		intervals: make([]time.Duration, 0, window),
	}
}

func (s *FrameStats) OnFrame(f *frame.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	s.lastSeq = f.Seq
	s.renders = push(s.renders, f.RenderTime, s.window)
	if !s.lastAt.IsZero() {
		s.intervals = push(s.intervals, f.RenderedAt.Sub(s.lastAt), s.window)
	}
	s.lastAt = f.RenderedAt
}

func (s *FrameStats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Frames:   s.frames,
		LastSeq:  s.lastSeq,
		RenderMs: make([]float64, len(s.renders)),
	}
	var sum time.Duration
	for i, d := range s.renders {
		sum += d
		st.RenderMs[i] = float64(d) / float64(time.Millisecond)
	}
	if n := len(s.renders); n > 0 {
		st.MeanRender = sum / time.Duration(n)
		st.LastRender = s.renders[n-1]
	}

	var span time.Duration
	for _, d := range s.intervals {
		span += d
	}
	if span > 0 {
		st.FPS = float64(len(s.intervals)) / span.Seconds()
	}
	return st
}

func (s *FrameStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames, s.lastSeq = 0, 0
	s.lastAt = time.Time{}
	s.renders = s.renders[:0]
	s.intervals = s.intervals[:0]
}

func push(ring []time.Duration, d time.Duration, limit int) []time.Duration {
	if len(ring) == limit {
		copy(ring, ring[1:])
		ring = ring[:limit-1]
	}
	return append(ring, d)
}
