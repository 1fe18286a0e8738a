// Package colormap turns raw escape counts into displayable colours through
// fixed 256-entry lookup tables.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
)

// ErrUnknownPalette indicates a palette name ByName does not know.
var ErrUnknownPalette = errors.New("colormap: unknown palette")

// Size is the number of entries in every palette.
const Size = 256

type Palette [Size]color.RGBA

var palettes = map[string]func() Palette{
	"turbo": Turbo,
	"gray":  Gray,
	"wheel": Wheel,
}

func ByName(name string) (Palette, error) {
	build, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPalette, name, Names())
	}
	return build(), nil
}

func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Turbo samples the polynomial fit of Google's Turbo colormap: near black,
// through blue, green and yellow, to dark red.
func Turbo() Palette {
	var p Palette
	for i := range p {
		x := float64(i) / (Size - 1)
		r := 0.13572138 + x*(4.61539260+x*(-42.66032258+x*(132.13108234+x*(-152.94239396+x*59.28637943))))
		g := 0.09140261 + x*(2.19418839+x*(4.84296658+x*(-14.18503333+x*(4.27729857+x*2.82956604))))
		b := 0.10667330 + x*(12.64194608+x*(-60.58204836+x*(110.36276771+x*(-89.90310912+x*27.34824973))))
		p[i] = color.RGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 255}
	}
	return p
}

func Gray() Palette {
	var p Palette
	for i := range p {
		v := uint8(i)
		p[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// Wheel walks the hue circle red, yellow, green, cyan, blue, magenta and
// back to red at full saturation.
func Wheel() Palette {
	var p Palette
	for i := range p {
		h := float64(i) / Size * 6
		sector := int(h)
		f := h - float64(sector)
		up, down := unit8(f), unit8(1-f)
		var c color.RGBA
		switch sector {
		case 0:
			c = color.RGBA{255, up, 0, 255}
		case 1:
			c = color.RGBA{down, 255, 0, 255}
		case 2:
			c = color.RGBA{0, 255, up, 255}
		case 3:
			c = color.RGBA{0, down, 255, 255}
		case 4:
			c = color.RGBA{up, 0, 255, 255}
		default:
			c = color.RGBA{255, 0, down, 255}
		}
		p[i] = c
	}
	return p
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
