//go:build gui

package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mandelview/internal/control"
)

func TestKeyTokensParse(t *testing.T) {
	for key, token := range keyTokens {
		if _, err := control.ParseKey(token); err != nil {
			t.Errorf("key %d maps to %q: %v", key, token, err)
		}
	}
	if _, ok := KeyToken(rl.KeyQ); ok {
		t.Error("q quits and must not map to a command")
	}
}
