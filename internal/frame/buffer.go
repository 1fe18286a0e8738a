package frame

import (
	"context"
	"sync"
	"sync/atomic"
)

// Buffer is a single-slot mailbox holding the latest frame. Publish must
// only be called from one goroutine; Latest and Wait are safe from any.
type Buffer struct {
	cur atomic.Pointer[Frame]

	mu    sync.Mutex
	seq   uint64
	ready chan struct{} // closed by the next Publish
}

func NewBuffer() *Buffer {
	return &Buffer{ready: make(chan struct{})}
}

// Publish stamps f with the next sequence number and makes it current.
// The caller must not touch f afterwards.
func (b *Buffer) Publish(f *Frame) uint64 {
	b.mu.Lock()
	b.seq++
	f.Seq = b.seq
	b.cur.Store(f)
	ready := b.ready
	b.ready = make(chan struct{})
	b.mu.Unlock()

	close(ready)
	return f.Seq
}

// Latest returns the current frame, or nil before the first Publish.
func (b *Buffer) Latest() *Frame {
	return b.cur.Load()
}

// Seq returns the sequence number of the current frame, 0 if none.
func (b *Buffer) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Wait blocks until a frame newer than after is current, or ctx ends.
func (b *Buffer) Wait(ctx context.Context, after uint64) (*Frame, error) {
	for {
		b.mu.Lock()
		f := b.cur.Load()
		ready := b.ready
		b.mu.Unlock()

		if f != nil && f.Seq > after {
			return f, nil
		}

		select {
		case <-ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
