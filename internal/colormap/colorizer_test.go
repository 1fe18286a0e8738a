package colormap

import (
	"errors"
	"image/color"
	"testing"

	"github.com/san-kum/mandelview/internal/fractal"
)

func TestColorizer_Index(t *testing.T) {
	c := NewColorizer(Gray(), 3)
	tests := []struct {
		count uint32
		want  uint8
	}{
		{0, 0},
		{1, 3},
		{85, 255},
		{86, 2},
		{1024, 0},
	}
	for _, tt := range tests {
		if got := c.Index(tt.count); got != tt.want {
			t.Errorf("Index(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestColorizer_Colorize(t *testing.T) {
	img := fractal.NewIterationImage(4, 2)
	for i := range img.Counts {
		img.Counts[i] = uint32(i * 10)
	}

	c := NewColorizer(Gray(), 1)
	out := c.Colorize(img)

	if b := out.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 4x2", b)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(img.At(x, y))
			want := color.RGBA{v, v, v, 255}
			if got := out.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestColorizer_Deterministic(t *testing.T) {
	img := fractal.NewIterationImage(32, 16)
	img.Fill(fractal.RegionAround(-1, 0, 2, 32, 16), 1024)

	c := NewColorizer(Turbo(), DefaultScale)
	a := c.Colorize(img)
	b := c.Colorize(img)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs between runs", i)
		}
	}
}

func TestNewColorizer_ZeroScale(t *testing.T) {
	if got := NewColorizer(Gray(), 0).Index(1); got != DefaultScale {
		t.Errorf("zero scale should default to %d, got %d", DefaultScale, got)
	}
}

func TestPalettes_Opaque(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		for i, c := range p {
			if c.A != 255 {
				t.Errorf("%s[%d] alpha = %d", name, i, c.A)
			}
		}
	}
}

func TestTurbo_Endpoints(t *testing.T) {
	p := Turbo()
	first, last := p[0], p[Size-1]
	if int(first.R)+int(first.G)+int(first.B) > 150 {
		t.Errorf("turbo should start dark, got %v", first)
	}
	if last.R <= last.G || last.R <= last.B {
		t.Errorf("turbo should end dark red, got %v", last)
	}
	mid := p[Size/2]
	if mid.G < 200 {
		t.Errorf("turbo middle should be bright green-ish, got %v", mid)
	}
}

func TestWheel_StartsRed(t *testing.T) {
	if got := Wheel()[0]; got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("wheel[0] = %v, want red", got)
	}
}

func TestByName_Unknown(t *testing.T) {
	if _, err := ByName("plasma"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("expected ErrUnknownPalette, got %v", err)
	}
}
