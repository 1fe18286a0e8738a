// Package control turns user key presses into viewport commands.
//
// Every front end (HTTP, websocket, terminal, window) maps its key events
// through [ParseKey] and applies the result with a [Commander], so the same
// keys drive the viewer everywhere:
//
//	j, +, =         zoom in
//	k, -            zoom out
//	a, left         pan left
//	d, right        pan right
//	w, up           pan up
//	s, down         pan down
//	l, space, esc   stop all motion
//
// Each press toggles: repeating the active key cancels it.
package control
