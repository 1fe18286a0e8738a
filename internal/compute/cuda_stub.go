//go:build !cuda

package compute

import (
	"context"

	"github.com/san-kum/mandelview/internal/fractal"
)

type CUDABackend struct{}

func NewCUDABackend(grid Grid) *CUDABackend {
	return &CUDABackend{}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Escape(ctx context.Context, r fractal.Region, img *fractal.IterationImage, maxIter uint32) error {
	return &DispatchError{Backend: c.Name(), Cause: ErrBackendUnavailable}
}
