package compute

import (
	"context"
	"fmt"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Backend fills an iteration image for a region of the complex plane.
// Escape either fills every pixel or returns an error; callers must not use
// the image after a failure.
type Backend interface {
	Name() string
	Available() bool
	Escape(ctx context.Context, r fractal.Region, img *fractal.IterationImage, maxIter uint32) error
	Cleanup()
}

// Names lists the values accepted by Select.
func Names() []string {
	return []string{"auto", "cpu", "cuda"}
}

// Select returns the backend registered under name. "auto" prefers CUDA
// when a device is present and falls back to the CPU. A zero grid lets each
// backend pick its own launch geometry.
func Select(name string, grid Grid) (Backend, error) {
	switch name {
	case "", "auto":
		return AutoSelectBackend(grid), nil
	case "cpu":
		return NewCPUBackend(grid), nil
	case "cuda":
		cuda := NewCUDABackend(grid)
		if !cuda.Available() {
			return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, cuda.Name())
		}
		return cuda, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names())
}

func AutoSelectBackend(grid Grid) Backend {
	cuda := NewCUDABackend(grid)
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend(grid)
}
