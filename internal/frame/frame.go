// Package frame publishes rendered images from the single render loop to
// any number of readers.
//
// A [Frame] is immutable once handed to [Buffer.Publish]. Publication swaps
// an atomic pointer, so a reader holds either the previous complete frame
// or the new complete frame and never a mix of the two. Readers that want
// to decorate a frame draw on [Frame.CloneImage].
package frame

import (
	"context"
	"image"
	"time"

	"github.com/san-kum/mandelview/internal/viewport"
)

type Frame struct {
	Seq        uint64
	Image      *image.RGBA
	Viewport   viewport.Viewport
	RenderedAt time.Time
	RenderTime time.Duration
}

// CloneImage returns a private copy of the pixels.
func (f *Frame) CloneImage() *image.RGBA {
	dst := image.NewRGBA(f.Image.Rect)
	copy(dst.Pix, f.Image.Pix)
	return dst
}

// Source is the read side of a Buffer.
type Source interface {
	Latest() *Frame
	Wait(ctx context.Context, after uint64) (*Frame, error)
}
