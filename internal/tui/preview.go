package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = "▀"

// Preview downsamples img to cols x rows terminal cells. Each cell shows two
// pixel rows: the upper one as foreground of a half block, the lower one as
// background.
func Preview(img *image.RGBA, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ""
	}

	var s strings.Builder
	for row := 0; row < rows; row++ {
		top := b.Min.Y + (2*row)*h/(2*rows)
		bottom := b.Min.Y + (2*row+1)*h/(2*rows)
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*w/cols
			style := lipgloss.NewStyle().
				Foreground(hex(img, x, top)).
				Background(hex(img, x, bottom))
			s.WriteString(style.Render(halfBlock))
		}
		if row < rows-1 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

// FitPreview returns the largest cell grid within maxCols x maxRows that
// keeps the aspect ratio of a w x h image.
func FitPreview(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = cols * h / w / 2
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * w / h
	}
	return max(cols, 1), max(rows, 1)
}

func hex(img *image.RGBA, x, y int) lipgloss.Color {
	c := img.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
