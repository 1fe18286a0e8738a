package fractal

import "sync"

// ImagePool recycles iteration buffers of one size between frames.
type ImagePool struct {
	pool          sync.Pool
	width, height int
}

func NewImagePool(width, height int) *ImagePool {
	return &ImagePool{
		width:  width,
		height: height,
		pool: sync.Pool{
			New: func() interface{} {
				return NewIterationImage(width, height)
			},
		},
	}
}

// Get returns a buffer owned by the caller until it is passed to Put. Its
// contents are unspecified; backends overwrite every pixel.
func (p *ImagePool) Get() *IterationImage {
	return p.pool.Get().(*IterationImage)
}

// Put hands img back. Buffers of another size are dropped.
func (p *ImagePool) Put(img *IterationImage) {
	if img == nil || img.Width != p.width || img.Height != p.height || len(img.Counts) != p.width*p.height {
		return
	}
	p.pool.Put(img)
}
