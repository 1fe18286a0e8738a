package render

import (
	"context"
	"image"

	"github.com/san-kum/mandelview/internal/colormap"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/viewport"
)

// Renderer produces one colour image for a viewport snapshot.
type Renderer struct {
	backend   compute.Backend
	colorizer *colormap.Colorizer
	width     int
	height    int
	maxIter   uint32
	buffers   *fractal.ImagePool
}

func NewRenderer(backend compute.Backend, colorizer *colormap.Colorizer, width, height int, maxIter uint32) *Renderer {
	return &Renderer{
		backend:   backend,
		colorizer: colorizer,
		width:     width,
		height:    height,
		maxIter:   maxIter,
		buffers:   fractal.NewImagePool(width, height),
	}
}

func (r *Renderer) Backend() compute.Backend { return r.backend }
func (r *Renderer) Size() (int, int)         { return r.width, r.height }
func (r *Renderer) MaxIterations() uint32    { return r.maxIter }

// Iterations evaluates the kernel for vp into a fresh buffer.
func (r *Renderer) Iterations(ctx context.Context, vp viewport.Viewport) (*fractal.IterationImage, error) {
	img := fractal.NewIterationImage(r.width, r.height)
	if err := r.backend.Escape(ctx, vp.Region(r.width, r.height), img, r.maxIter); err != nil {
		return nil, err
	}
	return img, nil
}

// Render returns the coloured frame for vp. On error nothing is returned.
// The iteration buffer is private to this call and recycled once coloured.
func (r *Renderer) Render(ctx context.Context, vp viewport.Viewport) (*image.RGBA, error) {
	counts := r.buffers.Get()
	defer r.buffers.Put(counts)

	if err := r.backend.Escape(ctx, vp.Region(r.width, r.height), counts, r.maxIter); err != nil {
		return nil, err
	}
	return r.colorizer.Colorize(counts), nil
}
