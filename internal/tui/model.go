// Package tui is a terminal viewer for the render loop. It previews the
// latest frame with coloured half blocks and sends key presses to the
// viewport.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mandelview/internal/control"
	"github.com/san-kum/mandelview/internal/frame"
	"github.com/san-kum/mandelview/internal/logging"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/viewport"
)

const (
	tickRate    = time.Second / 15
	statsWidth  = 46
	graphHeight = 4
)

type TickMsg time.Time

// LoopDoneMsg reports that the render loop returned.
type LoopDoneMsg struct{ Err error }

type Model struct {
	source  frame.Source
	state   *viewport.State
	stats   *metrics.FrameStats
	backend string
	logger  *slog.Logger

	width, height int
	current       *frame.Frame
	preview       string
	previewSize   [2]int
	lastKey       string
	keyErr        error
	loopErr       error
	showHelp      bool
}

func NewModel(source frame.Source, state *viewport.State, stats *metrics.FrameStats, backend string) Model {
	return Model{
		source:  source,
		state:   state,
		stats:   stats,
		backend: backend,
		logger:  logging.Nop(),
		width:   100,
		height:  30,
	}
}

// Err is the render loop failure that ended the program, if any.
func (m Model) Err() error { return m.loopErr }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		default:
			m.lastKey = key
			_, m.keyErr = control.Press(m.state, key, m.logger)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.previewSize = [2]int{}
		m.refresh()
	case TickMsg:
		m.refresh()
		return m, tick()
	case LoopDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.loopErr = msg.Err
		}
		return m, tea.Quit
	}
	return m, nil
}

// refresh rebuilds the preview when a newer frame or a new terminal size is
// available.
func (m *Model) refresh() {
	f := m.source.Latest()
	if f == nil {
		return
	}
	b := f.Image.Bounds()
	cols, rows := FitPreview(b.Dx(), b.Dy(), max(m.width-statsWidth-2, 8), max(m.height-2, 4))
	size := [2]int{cols, rows}
	if m.current != nil && m.current.Seq == f.Seq && m.previewSize == size {
		return
	}
	m.current = f
	m.previewSize = size
	m.preview = Preview(f.Image, cols, rows)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("MANDELVIEW") + "\n\n")

	vp := m.state.Snapshot()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	if m.current != nil {
		row("Frame", fmt.Sprintf("%d", m.current.Seq))
	} else {
		row("Frame", "waiting")
	}
	row("Center", fmt.Sprintf("%.10f", vp.CenterX))
	row("", fmt.Sprintf("%+.10fi", vp.CenterY))
	row("Scale", fmt.Sprintf("%.3e", vp.Scale))
	s.WriteString(labelStyle.Render("Motion") + intent(vp.Zoom.String(), vp.Zoom != viewport.ZoomNone) +
		" " + intent(vp.Move.String(), vp.Move != viewport.MoveNone) + "\n")
	row("Backend", m.backend)

	if m.stats != nil {
		st := m.stats.Snapshot()
		row("FPS", fmt.Sprintf("%.1f", st.FPS))
		row("Render", fmt.Sprintf("%.1fms (mean %.1fms)",
			float64(st.LastRender)/float64(time.Millisecond),
			float64(st.MeanRender)/float64(time.Millisecond)))
		if len(st.RenderMs) > 1 {
			chart := asciigraph.Plot(st.RenderMs,
				asciigraph.Height(graphHeight),
				asciigraph.Width(statsWidth-14),
				asciigraph.Caption("render ms"))
			s.WriteString("\n" + graphStyle.Render(chart) + "\n")
		}
	}

	if m.keyErr != nil {
		s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("key %q ignored", m.lastKey)) + "\n")
	}
	if m.showHelp {
		s.WriteString("\n" + helpStyle.Render(helpText()))
	} else {
		s.WriteString("\n" + helpStyle.Render("?:keys  Q:quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.preview, statsStyle.Render(s.String()))
}

func intent(name string, active bool) string {
	if active {
		return activeStyle.Render(name)
	}
	return valueStyle.Render(name)
}

func helpText() string {
	var s strings.Builder
	for _, b := range control.Keys() {
		fmt.Fprintf(&s, "%-3s %s\n", b.Key, b.Command)
	}
	s.WriteString("repeat a key to cancel it\nQ   quit")
	return s.String()
}

// Run shows the viewer until the user quits or loop returns. loop receives
// a context that is canceled when the viewer exits.
func Run(ctx context.Context, m Model, loop func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	loopErr := make(chan error, 1)
	go func() {
		err := loop(ctx)
		loopErr <- err
		p.Send(LoopDoneMsg{Err: err})
	}()

	_, runErr := p.Run()
	cancel()

	if err := <-loopErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
