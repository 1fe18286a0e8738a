// Package hud draws a text overlay with the frame number and viewport onto
// a copy of a frame.
package hud

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/mandelview/internal/frame"
)

const padding = 4

var backdrop = image.NewUniform(color.RGBA{0, 0, 0, 160})

// Lines returns the overlay text for f.
func Lines(f *frame.Frame) []string {
	vp := f.Viewport
	return []string{
		fmt.Sprintf("#%d  %s", f.Seq, f.RenderTime.Round(100_000)),
		fmt.Sprintf("re %+.12f", vp.CenterX),
		fmt.Sprintf("im %+.12f", vp.CenterY),
		fmt.Sprintf("scale %.4e", vp.Scale),
	}
}

// Draw returns a copy of the frame image with the overlay in the top left
// corner. The published frame is not modified.
func Draw(f *frame.Frame) *image.RGBA {
	img := f.CloneImage()
	face := basicfont.Face7x13
	lines := Lines(f)

	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	var textWidth fixed.Int26_6
	for _, l := range lines {
		textWidth = max(textWidth, font.MeasureString(face, l))
	}

	origin := img.Bounds().Min
	box := image.Rect(0, 0, textWidth.Ceil()+2*padding, len(lines)*lineHeight+2*padding).
		Add(origin).
		Intersect(img.Bounds())
	draw.Draw(img, box, backdrop, image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(origin.X+padding, origin.Y+padding+m.Ascent.Ceil()+i*lineHeight)
		d.DrawString(l)
	}
	return img
}
