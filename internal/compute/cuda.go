//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern const char* cuda_error_string(int status);
extern int mandel_gpu(double min_x, double max_x, double min_y, double max_y,
                      unsigned int* image, int width, int height, unsigned int max_iter,
                      int grid_x, int grid_y, int block_x, int block_y);
*/
import "C"

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Launch geometry: 32x24 blocks of 16x16 threads, 512x384 threads striding
// over the image.
var (
	DefaultCUDAGrid = Grid{X: 32, Y: 24}
	DefaultBlock    = Grid{X: 16, Y: 16}
)

type CUDABackend struct {
	mu         sync.Mutex
	available  bool
	deviceName string
	grid       Grid
	block      Grid
}

func NewCUDABackend(grid Grid) *CUDABackend {
	if !grid.Valid() {
		grid = DefaultCUDAGrid
	}
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
		grid:       grid,
		block:      DefaultBlock,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Escape(ctx context.Context, r fractal.Region, img *fractal.IterationImage, maxIter uint32) error {
	if !c.available {
		return &DispatchError{Backend: c.Name(), Cause: ErrBackendUnavailable}
	}
	if err := ctx.Err(); err != nil {
		return &DispatchError{Backend: c.Name(), Cause: err}
	}
	if len(img.Counts) == 0 {
		return nil
	}

	// One launch at a time; the kernel owns the device buffer while running.
	c.mu.Lock()
	defer c.mu.Unlock()

	status := C.mandel_gpu(
		C.double(r.MinX), C.double(r.MaxX),
		C.double(r.MinY), C.double(r.MaxY),
		(*C.uint)(unsafe.Pointer(&img.Counts[0])),
		C.int(img.Width), C.int(img.Height), C.uint(maxIter),
		C.int(c.grid.X), C.int(c.grid.Y),
		C.int(c.block.X), C.int(c.block.Y),
	)
	if status != 0 {
		msg := C.GoString(C.cuda_error_string(status))
		return &DispatchError{Backend: c.Name(), Cause: fmt.Errorf("cuda status %d: %s", int(status), msg)}
	}
	return nil
}
