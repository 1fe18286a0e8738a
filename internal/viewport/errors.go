package viewport

import "errors"

var (
	// ErrInvalidCommand indicates a command outside the recognised set.
	ErrInvalidCommand = errors.New("viewport: invalid command")
)
