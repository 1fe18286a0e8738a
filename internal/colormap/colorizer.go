package colormap

import (
	"image"

	"github.com/san-kum/mandelview/internal/fractal"
)

// DefaultScale spreads consecutive escape counts three palette entries
// apart.
const DefaultScale = 3

// Colorizer maps escape counts to palette entries. The index is
// uint8(count * Scale): the multiplication wraps modulo the palette size,
// so bands repeat as counts grow past the 8-bit domain. Colorize keeps no
// state between calls.
type Colorizer struct {
	palette Palette
	scale   uint32
}

func NewColorizer(p Palette, scale uint32) *Colorizer {
	if scale == 0 {
		scale = DefaultScale
	}
	return &Colorizer{palette: p, scale: scale}
}

func (c *Colorizer) Index(count uint32) uint8 {
	return uint8(count * c.scale)
}

func (c *Colorizer) Colorize(img *fractal.IterationImage) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		pix := out.Pix[y*out.Stride : y*out.Stride+img.Width*4]
		for x, n := range row {
			col := c.palette[c.Index(n)]
			i := x * 4
			pix[i+0] = col.R
			pix[i+1] = col.G
			pix[i+2] = col.B
			pix[i+3] = col.A
		}
	}
	return out
}
