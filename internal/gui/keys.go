//go:build gui

package gui

import rl "github.com/gen2brain/raylib-go/raylib"

var keyTokens = map[int32]string{
	rl.KeyJ:          "j",
	rl.KeyKpAdd:      "+",
	rl.KeyEqual:      "=",
	rl.KeyK:          "k",
	rl.KeyMinus:      "-",
	rl.KeyKpSubtract: "-",
	rl.KeyA:          "a",
	rl.KeyD:          "d",
	rl.KeyW:          "w",
	rl.KeyS:          "s",
	rl.KeyL:          "l",
	rl.KeyLeft:       "left",
	rl.KeyRight:      "right",
	rl.KeyUp:         "up",
	rl.KeyDown:       "down",
	rl.KeySpace:      "space",
	rl.KeyEscape:     "esc",
}

// KeyToken maps a raylib key code to the token control.ParseKey expects.
func KeyToken(key int32) (string, bool) {
	t, ok := keyTokens[key]
	return t, ok
}
