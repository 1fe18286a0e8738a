package control

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/san-kum/mandelview/internal/viewport"
)

var ErrUnknownKey = errors.New("control: unknown key")

// Commander accepts viewport commands. *viewport.State implements it.
type Commander interface {
	Apply(cmd viewport.Command) error
}

var keymap = map[string]viewport.Command{
	"j": viewport.ZoomInToggle,
	"+": viewport.ZoomInToggle,
	"=": viewport.ZoomInToggle,
	"k": viewport.ZoomOutToggle,
	"-": viewport.ZoomOutToggle,

	"a":     viewport.MoveLeftToggle,
	"left":  viewport.MoveLeftToggle,
	"d":     viewport.MoveRightToggle,
	"right": viewport.MoveRightToggle,
	"w":     viewport.MoveUpToggle,
	"up":    viewport.MoveUpToggle,
	"s":     viewport.MoveDownToggle,
	"down":  viewport.MoveDownToggle,

	"l":      viewport.StopAll,
	"space":  viewport.StopAll,
	" ":      viewport.StopAll,
	"esc":    viewport.StopAll,
	"escape": viewport.StopAll,
}

// ParseKey maps a key token to its command. Tokens are matched case
// insensitively except for single characters, where "J" is not "j".
func ParseKey(key string) (viewport.Command, error) {
	token := key
	if len(token) > 1 {
		token = strings.ToLower(strings.TrimSpace(token))
	}
	if cmd, ok := keymap[token]; ok {
		return cmd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Keys returns the primary key for every command, for help text.
func Keys() []KeyBinding {
	return []KeyBinding{
		{Key: "j", Command: viewport.ZoomInToggle},
		{Key: "k", Command: viewport.ZoomOutToggle},
		{Key: "a", Command: viewport.MoveLeftToggle},
		{Key: "d", Command: viewport.MoveRightToggle},
		{Key: "w", Command: viewport.MoveUpToggle},
		{Key: "s", Command: viewport.MoveDownToggle},
		{Key: "l", Command: viewport.StopAll},
	}
}

type KeyBinding struct {
	Key     string           `json:"key"`
	Command viewport.Command `json:"-"`
}

// Press parses key and applies it to c. Rejected keys are logged at debug
// and leave the state unchanged.
func Press(c Commander, key string, logger *slog.Logger) (viewport.Command, error) {
	cmd, err := ParseKey(key)
	if err == nil {
		err = c.Apply(cmd)
	}
	if err != nil {
		if logger != nil {
			logger.Debug("key rejected", "key", key, "error", err)
		}
		return 0, err
	}
	if logger != nil {
		logger.Debug("key applied", "key", key, "command", cmd.String())
	}
	return cmd, nil
}
