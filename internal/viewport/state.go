// Package viewport turns discrete navigation commands into continuous
// motion of the rendered view.
//
// Controllers call [State.Apply] whenever a key is pressed; the render loop
// calls [State.Advance] once per frame. Both go through one mutex, so an
// intent change is never observed half-applied and commands never queue:
// only the latest intent matters on the next tick.
package viewport

import (
	"math"
	"sync"
)

const (
	// DefaultRate is the fraction by which scale and centre change per tick.
	DefaultRate = 0.014

	// MinScale and MaxScale bound the zoom. Below MinScale neighbouring
	// pixels collapse onto the same float64; above MaxScale the view is all
	// escape colour.
	MinScale = 1e-13
	MaxScale = 1e3
)

type State struct {
	mu   sync.Mutex
	vp   Viewport
	rate float64

	clamps int
}

// New returns a state starting at initial. A non-positive rate selects
// DefaultRate.
func New(initial Viewport, rate float64) *State {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = DefaultRate
	}
	s := &State{vp: initial, rate: rate}
	s.vp.Scale, _ = clampScale(s.vp.Scale)
	return s
}

func (s *State) Rate() float64 { return s.rate }

// Apply updates the intents. Repeating the active toggle cancels it,
// another toggle on the same axis replaces it and StopAll clears both.
func (s *State) Apply(cmd Command) error {
	if !cmd.Valid() {
		return ErrInvalidCommand
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case ZoomInToggle:
		s.vp.Zoom = toggleZoom(s.vp.Zoom, ZoomIn)
	case ZoomOutToggle:
		s.vp.Zoom = toggleZoom(s.vp.Zoom, ZoomOut)
	case MoveLeftToggle:
		s.vp.Move = toggleMove(s.vp.Move, MoveLeft)
	case MoveRightToggle:
		s.vp.Move = toggleMove(s.vp.Move, MoveRight)
	case MoveUpToggle:
		s.vp.Move = toggleMove(s.vp.Move, MoveUp)
	case MoveDownToggle:
		s.vp.Move = toggleMove(s.vp.Move, MoveDown)
	case StopAll:
		s.vp.Move = MoveNone
		s.vp.Zoom = ZoomNone
	}
	return nil
}

func toggleZoom(cur, want Zoom) Zoom {
	if cur == want {
		return ZoomNone
	}
	return want
}

func toggleMove(cur, want Move) Move {
	if cur == want {
		return MoveNone
	}
	return want
}

// Advance applies one tick of the active intents and returns the resulting
// snapshot. The pan distance is proportional to the current scale, so
// panning covers the same fraction of the screen at every zoom depth.
func (s *State) Advance() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.vp.Zoom {
	case ZoomIn:
		s.vp.Scale *= 1 - s.rate
	case ZoomOut:
		s.vp.Scale *= 1 + s.rate
	}

	var clamped bool
	s.vp.Scale, clamped = clampScale(s.vp.Scale)
	if clamped {
		s.clamps++
	}

	distance := s.rate * s.vp.Scale
	switch s.vp.Move {
	case MoveLeft:
		s.vp.CenterX -= distance
	case MoveRight:
		s.vp.CenterX += distance
	case MoveUp:
		s.vp.CenterY -= distance
	case MoveDown:
		s.vp.CenterY += distance
	}

	return s.vp
}

// Snapshot returns a consistent copy of the current state.
func (s *State) Snapshot() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp
}

// Reset jumps to vp, keeping its intents. The scale guard still applies.
func (s *State) Reset(vp Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp.Scale, _ = clampScale(vp.Scale)
	s.vp = vp
}

// Clamps reports how many ticks had to correct a degenerate scale.
func (s *State) Clamps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clamps
}

func clampScale(scale float64) (float64, bool) {
	switch {
	case math.IsNaN(scale), scale < MinScale:
		return MinScale, true
	case scale > MaxScale:
		return MaxScale, true
	}
	return scale, false
}
