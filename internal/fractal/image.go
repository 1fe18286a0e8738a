package fractal

// IterationImage is a Height x Width grid of escape counts stored row-major.
type IterationImage struct {
	Width  int
	Height int
	Counts []uint32
}

func NewIterationImage(width, height int) *IterationImage {
	return &IterationImage{
		Width:  width,
		Height: height,
		Counts: make([]uint32, width*height),
	}
}

func (m *IterationImage) At(x, y int) uint32 {
	return m.Counts[y*m.Width+x]
}

func (m *IterationImage) Set(x, y int, n uint32) {
	m.Counts[y*m.Width+x] = n
}

// Row returns the backing slice for row y. Writes through it land in the
// image.
func (m *IterationImage) Row(y int) []uint32 {
	start := y * m.Width
	return m.Counts[start : start+m.Width]
}

// Fill evaluates every pixel serially. Backends use it as the reference
// result and for images too small to be worth splitting.
func (m *IterationImage) Fill(r Region, maxIter uint32) {
	dx, dy := r.PixelSize(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		im := r.MinY + float64(y)*dy
		row := m.Row(y)
		for x := range row {
			row[x] = EscapeIterations(r.MinX+float64(x)*dx, im, maxIter)
		}
	}
}
