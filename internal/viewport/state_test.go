package viewport

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestApply_ToggleCancel(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"zoom in", ZoomInToggle},
		{"zoom out", ZoomOutToggle},
		{"left", MoveLeftToggle},
		{"right", MoveRightToggle},
		{"up", MoveUpToggle},
		{"down", MoveDownToggle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Default(), DefaultRate)
			if err := s.Apply(tt.cmd); err != nil {
				t.Fatalf("apply: %v", err)
			}
			if err := s.Apply(tt.cmd); err != nil {
				t.Fatalf("apply: %v", err)
			}
			vp := s.Snapshot()
			if vp.Move != MoveNone || vp.Zoom != ZoomNone {
				t.Errorf("expected both intents none, got move=%s zoom=%s", vp.Move, vp.Zoom)
			}
		})
	}
}

func TestApply_LaterToggleWins(t *testing.T) {
	s := New(Default(), DefaultRate)
	s.Apply(MoveLeftToggle)
	s.Apply(MoveRightToggle)
	if got := s.Snapshot().Move; got != MoveRight {
		t.Errorf("move = %s, want right", got)
	}

	s.Apply(ZoomInToggle)
	s.Apply(ZoomOutToggle)
	if got := s.Snapshot().Zoom; got != ZoomOut {
		t.Errorf("zoom = %s, want out", got)
	}
	if got := s.Snapshot().Move; got != MoveRight {
		t.Errorf("zoom toggles must not touch move, got %s", got)
	}
}

func TestApply_StopAll(t *testing.T) {
	s := New(Default(), DefaultRate)
	s.Apply(MoveUpToggle)
	s.Apply(ZoomInToggle)
	s.Apply(StopAll)

	vp := s.Snapshot()
	if vp.Move != MoveNone || vp.Zoom != ZoomNone {
		t.Errorf("StopAll left move=%s zoom=%s", vp.Move, vp.Zoom)
	}

	s.Apply(StopAll)
	if vp := s.Snapshot(); vp.Move != MoveNone || vp.Zoom != ZoomNone {
		t.Error("StopAll on idle state should stay idle")
	}
}

func TestApply_InvalidCommand(t *testing.T) {
	s := New(Default(), DefaultRate)
	s.Apply(MoveLeftToggle)
	before := s.Snapshot()

	for _, cmd := range []Command{0, StopAll + 1, 200} {
		if err := s.Apply(cmd); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("Apply(%d) error = %v, want ErrInvalidCommand", cmd, err)
		}
	}
	if after := s.Snapshot(); after != before {
		t.Errorf("invalid commands changed state: %v -> %v", before, after)
	}
}

func TestAdvance_ZoomAndPan(t *testing.T) {
	const k = 0.014
	s := New(Default(), k)

	vp := s.Advance()
	if vp != Default() {
		t.Errorf("idle advance changed the viewport: %v", vp)
	}

	s.Apply(ZoomInToggle)
	vp = s.Advance()
	if want := 2 * (1 - k); math.Abs(vp.Scale-want) > 1e-15 {
		t.Errorf("zoom in scale = %v, want %v", vp.Scale, want)
	}

	s.Apply(ZoomOutToggle)
	prev := vp.Scale
	vp = s.Advance()
	if want := prev * (1 + k); math.Abs(vp.Scale-want) > 1e-15 {
		t.Errorf("zoom out scale = %v, want %v", vp.Scale, want)
	}

	s.Apply(StopAll)
	tests := []struct {
		cmd    Command
		dx, dy float64
	}{
		{MoveLeftToggle, -1, 0},
		{MoveRightToggle, 1, 0},
		{MoveUpToggle, 0, -1},
		{MoveDownToggle, 0, 1},
	}
	for _, tt := range tests {
		s.Apply(tt.cmd)
		before := s.Snapshot()
		after := s.Advance()
		dist := k * before.Scale
		if math.Abs(after.CenterX-(before.CenterX+tt.dx*dist)) > 1e-15 ||
			math.Abs(after.CenterY-(before.CenterY+tt.dy*dist)) > 1e-15 {
			t.Errorf("%s: center moved from (%v,%v) to (%v,%v)", tt.cmd, before.CenterX, before.CenterY, after.CenterX, after.CenterY)
		}
		s.Apply(tt.cmd)
	}
}

func TestAdvance_PanUsesZoomedScale(t *testing.T) {
	const k = 0.1
	s := New(Default(), k)
	s.Apply(ZoomInToggle)
	s.Apply(MoveRightToggle)

	vp := s.Advance()
	wantScale := 2 * (1 - k)
	wantX := -1 + k*wantScale
	if math.Abs(vp.CenterX-wantX) > 1e-15 {
		t.Errorf("center x = %v, want %v", vp.CenterX, wantX)
	}
}

func TestAdvance_ClampsDegenerateScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"zero", 0, MinScale},
		{"negative", -1, MinScale},
		{"nan", math.NaN(), MinScale},
		{"tiny", MinScale / 10, MinScale},
		{"inf", math.Inf(1), MaxScale},
		{"huge", MaxScale * 10, MaxScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Default(), DefaultRate)
			s.mu.Lock()
			s.vp.Scale = tt.scale
			s.mu.Unlock()

			if got := s.Advance().Scale; got != tt.want {
				t.Errorf("scale = %v, want %v", got, tt.want)
			}
			if s.Clamps() != 1 {
				t.Errorf("clamps = %d, want 1", s.Clamps())
			}
		})
	}
}

func TestAdvance_DeepZoomStaysPositive(t *testing.T) {
	s := New(Default(), 0.5)
	s.Apply(ZoomInToggle)
	for i := 0; i < 200; i++ {
		if vp := s.Advance(); vp.Scale <= 0 {
			t.Fatalf("tick %d: scale %v not positive", i, vp.Scale)
		}
	}
	if got := s.Snapshot().Scale; got != MinScale {
		t.Errorf("scale = %v, want MinScale", got)
	}
}

func TestReset(t *testing.T) {
	s := New(Default(), DefaultRate)
	s.Reset(Viewport{CenterX: -0.75, CenterY: 0.1, Scale: 0.05, Move: MoveLeft})
	vp := s.Snapshot()
	if vp.CenterX != -0.75 || vp.Scale != 0.05 || vp.Move != MoveLeft {
		t.Errorf("reset not applied: %v", vp)
	}

	s.Reset(Viewport{Scale: -3})
	if s.Snapshot().Scale != MinScale {
		t.Error("reset must clamp scale")
	}
}

func TestNew_DefaultsRate(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN()} {
		if got := New(Default(), r).Rate(); got != DefaultRate {
			t.Errorf("New(rate=%v).Rate() = %v", r, got)
		}
	}
}

func TestParseCommand(t *testing.T) {
	for c := ZoomInToggle; c <= StopAll; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("warp"); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestState_ConcurrentApplyAndAdvance(t *testing.T) {
	s := New(Default(), DefaultRate)
	cmds := []Command{ZoomInToggle, ZoomOutToggle, MoveLeftToggle, MoveRightToggle, MoveUpToggle, MoveDownToggle, StopAll}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s.Apply(cmds[(i+w)%len(cmds)])
			}
		}(w)
	}

	for i := 0; i < 500; i++ {
		vp := s.Advance()
		if vp.Scale <= 0 {
			t.Fatalf("scale went non-positive: %v", vp.Scale)
		}
		if vp.Move > MoveDown || vp.Zoom > ZoomOut {
			t.Fatalf("corrupt intents: %v", vp)
		}
	}
	wg.Wait()
}
