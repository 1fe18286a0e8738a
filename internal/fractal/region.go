package fractal

import "fmt"

// Region is the rectangle of the complex plane mapped onto an output image.
// Pixel (0, 0) sits at (MinX, MinY).
type Region struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// RegionAround returns the region centred on (cx, cy) whose horizontal
// half-extent is scale. The vertical half-extent follows the output aspect
// ratio so pixels stay square.
func RegionAround(cx, cy, scale float64, width, height int) Region {
	diffX := scale
	diffY := scale * float64(height) / float64(width)
	return Region{
		MinX: cx - diffX,
		MaxX: cx + diffX,
		MinY: cy - diffY,
		MaxY: cy + diffY,
	}
}

// PixelSize returns the complex-plane distance between neighbouring pixels
// along each axis.
func (r Region) PixelSize(width, height int) (dx, dy float64) {
	return (r.MaxX - r.MinX) / float64(width), (r.MaxY - r.MinY) / float64(height)
}

// PixelToComplex maps pixel (px, py) of a width x height image onto the
// region.
func (r Region) PixelToComplex(px, py, width, height int) (re, im float64) {
	dx, dy := r.PixelSize(width, height)
	return r.MinX + float64(px)*dx, r.MinY + float64(py)*dy
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", r.MinX, r.MaxX, r.MinY, r.MaxY)
}
