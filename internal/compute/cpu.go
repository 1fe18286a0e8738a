package compute

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/mandelview/internal/fractal"
	"golang.org/x/sync/errgroup"
)

// serialPixels is the image size below which splitting across goroutines
// costs more than it saves.
const serialPixels = 256

type CPUBackend struct {
	grid Grid
}

// NewCPUBackend runs one goroutine per grid unit. An invalid grid is
// replaced by one unit per CPU.
func NewCPUBackend(grid Grid) *CPUBackend {
	if !grid.Valid() {
		grid = FitGrid(runtime.NumCPU())
	}
	return &CPUBackend{grid: grid}
}

func (c *CPUBackend) Name() string    { return fmt.Sprintf("cpu (%s grid)", c.grid) }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Grid() Grid      { return c.grid }

func (c *CPUBackend) Escape(ctx context.Context, r fractal.Region, img *fractal.IterationImage, maxIter uint32) error {
	if err := ctx.Err(); err != nil {
		return &DispatchError{Backend: c.Name(), Cause: err}
	}

	if img.Width*img.Height < serialPixels {
		img.Fill(r, maxIter)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for uy := 0; uy < c.grid.Y; uy++ {
		for ux := 0; ux < c.grid.X; ux++ {
			ux, uy := ux, uy
			g.Go(func() error {
				return c.unit(gctx, ux, uy, r, img, maxIter)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return &DispatchError{Backend: c.Name(), Cause: err}
	}
	return nil
}

// unit evaluates the pixels owned by grid unit (ux, uy). Units write
// disjoint elements of img, so no locking is needed.
func (c *CPUBackend) unit(ctx context.Context, ux, uy int, r fractal.Region, img *fractal.IterationImage, maxIter uint32) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unit (%d,%d) panicked: %v", ux, uy, p)
		}
	}()

	dx, dy := r.PixelSize(img.Width, img.Height)
	for y := uy; y < img.Height; y += c.grid.Y {
		if err := ctx.Err(); err != nil {
			return err
		}
		im := r.MinY + float64(y)*dy
		row := img.Row(y)
		for x := ux; x < img.Width; x += c.grid.X {
			row[x] = fractal.EscapeIterations(r.MinX+float64(x)*dx, im, maxIter)
		}
	}
	return nil
}
