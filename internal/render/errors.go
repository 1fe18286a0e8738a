package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/mandelview/internal/viewport"
)

var (
	// ErrLoopRunning indicates Run was called on a loop that already ran.
	ErrLoopRunning = errors.New("render: loop already started")
)

// CycleError is a failed render cycle. It ends the loop; the frame it was
// producing is never published.
type CycleError struct {
	Seq      uint64
	Viewport viewport.Viewport
	Err      error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("render: frame %d (%s): %v", e.Seq, e.Viewport, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
