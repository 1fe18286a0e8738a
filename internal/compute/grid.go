package compute

import "fmt"

// Grid is the number of compute units along each image axis.
type Grid struct {
	X, Y int
}

func (g Grid) Units() int { return g.X * g.Y }

func (g Grid) Valid() bool { return g.X > 0 && g.Y > 0 }

func (g Grid) String() string { return fmt.Sprintf("%dx%d", g.X, g.Y) }

// FitGrid arranges n units into the most square grid that uses all of them,
// wider than tall.
func FitGrid(n int) Grid {
	if n < 1 {
		n = 1
	}
	y := 1
	for d := 1; d*d <= n; d++ {
		if n%d == 0 {
			y = d
		}
	}
	return Grid{X: n / y, Y: y}
}

// Stride calls fn for every pixel owned by unit (ux, uy) of the grid in a
// width x height image.
func (g Grid) Stride(ux, uy, width, height int, fn func(x, y int)) {
	for y := uy; y < height; y += g.Y {
		for x := ux; x < width; x += g.X {
			fn(x, y)
		}
	}
}
