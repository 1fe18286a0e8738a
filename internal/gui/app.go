//go:build gui

// Package gui shows the render loop in a raylib window. The latest frame is
// uploaded to a texture whenever its sequence number changes; key presses
// go through the same key map as the other front ends.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mandelview/internal/control"
	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/viewport"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(0, 0, 0, 160)
)

const targetFPS = 60

type App struct {
	Source  frame.Source
	State   *viewport.State
	Stats   *metrics.FrameStats
	Backend string
	Logger  *slog.Logger

	Width, Height int
	ShowHUD       bool

	tex     rl.Texture2D
	pixels  []color.RGBA
	seq     uint64
	lastErr error
}

func NewApp(source frame.Source, state *viewport.State, stats *metrics.FrameStats, width, height int) *App {
	return &App{
		Source:  source,
		State:   state,
		Stats:   stats,
		Width:   width,
		Height:  height,
		ShowHUD: true,
		pixels:  make([]color.RGBA, width*height),
	}
}

func initWindow(width, height int) {
	rl.InitWindow(int32(width), int32(height), "mandelview")
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or ctx ends. raylib
// must be driven from the main goroutine.
func Run(ctx context.Context, a *App) {
	initWindow(a.Width, a.Height)
	defer rl.CloseWindow()

	img := rl.GenImageColor(a.Width, a.Height, ColBg)
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(a.tex)

	a.RunLoop(ctx)
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and uploads a newer frame. It reports false when
// the user asked to quit.
func (a *App) Update() bool {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyQ:
			return false
		case rl.KeyH:
			a.ShowHUD = !a.ShowHUD
			continue
		}
		token, ok := KeyToken(key)
		if !ok {
			continue
		}
		_, a.lastErr = control.Press(a.State, token, a.Logger)
	}

	f := a.Source.Latest()
	if f == nil || f.Seq == a.seq {
		return true
	}
	a.upload(f)
	return true
}

func (a *App) upload(f *frame.Frame) {
	b := f.Image.Bounds()
	if b.Dx() != a.Width || b.Dy() != a.Height {
		return
	}
	pix := f.Image.Pix
	for i := range a.pixels {
		a.pixels[i] = color.RGBA{pix[i*4], pix[i*4+1], pix[i*4+2], 255}
	}
	rl.UpdateTexture(a.tex, a.pixels)
	a.seq = f.Seq
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.DrawTexture(a.tex, 0, 0, rl.White)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	vp := a.State.Snapshot()
	lines := []string{
		fmt.Sprintf("frame %d", a.seq),
		fmt.Sprintf("re %+.12f", vp.CenterX),
		fmt.Sprintf("im %+.12f", vp.CenterY),
		fmt.Sprintf("scale %.4e", vp.Scale),
		fmt.Sprintf("zoom %s  move %s", vp.Zoom, vp.Move),
		a.Backend,
	}
	rl.DrawRectangle(10, 10, 260, int32(len(lines))*18+12, ColPanel)
	for i, l := range lines {
		col := ColAccent
		if i == 0 {
			col = ColSelect
		}
		rl.DrawText(l, 18, 16+int32(i)*18, 14, col)
	}

	a.DrawTelemetry()

	h := int32(a.Height)
	rl.DrawText("[J/K] ZOOM  [WASD] MOVE  [L] STOP  [H] HUD  [Q] QUIT", 18, h-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(a.Width)-70, h-24, 14, ColTextDim)
	if a.lastErr != nil {
		rl.DrawText(a.lastErr.Error(), 18, h-44, 14, rl.Red)
	}
}

// DrawTelemetry plots recent render times as a line strip.
func (a *App) DrawTelemetry() {
	if a.Stats == nil {
		return
	}
	st := a.Stats.Snapshot()
	if len(st.RenderMs) < 2 {
		return
	}

	rectX, rectY := 18, a.Height-110
	width, height := 240, 50

	minVal, maxVal := st.RenderMs[0], st.RenderMs[0]
	for _, v := range st.RenderMs {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(st.RenderMs))
	for i, val := range st.RenderMs {
		px := float32(rectX) + (float32(i)/float32(len(st.RenderMs)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("%.1f ms  %.1f fps", st.RenderMs[len(st.RenderMs)-1], st.FPS),
		int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
