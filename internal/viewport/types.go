package viewport

import (
	"fmt"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Move is the active panning intent. The zero value is MoveNone.
type Move uint8

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "none"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	}
	return fmt.Sprintf("move(%d)", uint8(m))
}

// Zoom is the active zooming intent. The zero value is ZoomNone.
type Zoom uint8

const (
	ZoomNone Zoom = iota
	ZoomIn
	ZoomOut
)

func (z Zoom) String() string {
	switch z {
	case ZoomNone:
		return "none"
	case ZoomIn:
		return "in"
	case ZoomOut:
		return "out"
	}
	return fmt.Sprintf("zoom(%d)", uint8(z))
}

// Command is a discrete navigation request delivered by a controller.
type Command uint8

const (
	ZoomInToggle Command = iota + 1
	ZoomOutToggle
	MoveLeftToggle
	MoveRightToggle
	MoveUpToggle
	MoveDownToggle
	StopAll
)

var commandNames = map[Command]string{
	ZoomInToggle:    "zoom_in",
	ZoomOutToggle:   "zoom_out",
	MoveLeftToggle:  "move_left",
	MoveRightToggle: "move_right",
	MoveUpToggle:    "move_up",
	MoveDownToggle:  "move_down",
	StopAll:         "stop",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

func (c Command) Valid() bool {
	_, ok := commandNames[c]
	return ok
}

// ParseCommand resolves a command by the name reported by Command.String.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, name)
}

// Viewport is a point-in-time copy of the navigation state.
type Viewport struct {
	CenterX float64 `json:"center_x" yaml:"center_x"`
	CenterY float64 `json:"center_y" yaml:"center_y"`
	Scale   float64 `json:"scale" yaml:"scale"`
	Move    Move    `json:"-" yaml:"-"`
	Zoom    Zoom    `json:"-" yaml:"-"`
}

// Default returns the start-up view: the whole set, centred at (-1, 0).
func Default() Viewport {
	return Viewport{CenterX: -1, CenterY: 0, Scale: 2}
}

// Region maps the viewport onto a width x height output.
func (v Viewport) Region(width, height int) fractal.Region {
	return fractal.RegionAround(v.CenterX, v.CenterY, v.Scale, width, height)
}

func (v Viewport) String() string {
	return fmt.Sprintf("center=(%.12g, %.12g) scale=%.6g move=%s zoom=%s", v.CenterX, v.CenterY, v.Scale, v.Move, v.Zoom)
}
