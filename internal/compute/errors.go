package compute

import (
	"errors"
	"fmt"
)

var (
	// ErrDispatchFailed indicates a kernel launch did not complete. The
	// image it was writing holds no usable frame.
	ErrDispatchFailed = errors.New("compute: kernel dispatch failed")

	// ErrBackendUnavailable indicates the requested backend cannot run here.
	ErrBackendUnavailable = errors.New("compute: backend not available")

	// ErrUnknownBackend indicates a backend name that Select does not know.
	ErrUnknownBackend = errors.New("compute: unknown backend")
)

// DispatchError reports which backend failed and why. It matches
// ErrDispatchFailed under errors.Is and unwraps to the cause.
type DispatchError struct {
	Backend string
	Cause   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%v on %s: %v", ErrDispatchFailed, e.Backend, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}
