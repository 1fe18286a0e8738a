package fractal

import "testing"

func TestEscapeIterations_TrivialEscape(t *testing.T) {
	tests := []struct {
		name     string
		re, im   float64
		expected uint32
	}{
		{"on radius", 2, 0, 0},
		{"far right", 3, 0, 0},
		{"far left", -2.5, 0, 0},
		{"imaginary axis", 0, 2.1, 0},
		{"diagonal", 1.5, 1.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeIterations(tt.re, tt.im, 1024); got != tt.expected {
				t.Errorf("EscapeIterations(%g, %g) = %d, want %d", tt.re, tt.im, got, tt.expected)
			}
		})
	}
}

func TestEscapeIterations_MembersReturnCap(t *testing.T) {
	caps := []uint32{1, 10, 255, 1024, 5000}
	points := []struct {
		name   string
		re, im float64
	}{
		{"origin", 0, 0},
		{"minus one", -1, 0},
		{"cardioid", -0.1, 0.1},
		{"period two bulb", -1.1, 0},
	}

	for _, p := range points {
		for _, n := range caps {
			if got := EscapeIterations(p.re, p.im, n); got != n {
				t.Errorf("%s with cap %d: got %d, want cap", p.name, n, got)
			}
		}
	}
}

func TestEscapeIterations_OneEscapesQuickly(t *testing.T) {
	got := EscapeIterations(1, 0, 1024)
	if got > 3 {
		t.Errorf("c=1 should escape within a handful of iterations, got %d", got)
	}
	if got != 1 {
		t.Errorf("c=1: expected 1, got %d", got)
	}
}

func TestEscapeIterations_ZeroCap(t *testing.T) {
	if got := EscapeIterations(5, 5, 0); got != 0 {
		t.Errorf("zero cap should return 0, got %d", got)
	}
}

func TestEscapeIterations_BoundaryIsSlow(t *testing.T) {
	near := EscapeIterations(-0.75, 0.01, 1024)
	far := EscapeIterations(-0.75, 0.5, 1024)
	if near <= far {
		t.Errorf("points near the neck should take longer: near=%d far=%d", near, far)
	}
}

func BenchmarkEscapeIterations(b *testing.B) {
	for i := 0; i < b.N; i++ {
		EscapeIterations(-0.743643887037151, 0.13182590420533, 1024)
	}
}
