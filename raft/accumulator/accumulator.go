// Package accumulator defines the batch-accumulator contract LeaderState
// consumes to ship control records (leader-change, kraft-version, voters).
// The accumulator's own internals — batching policy, compression, buffer
// reuse — belong to the log-writing subsystem and are out of scope for this
// module (spec §1); only the append/drain contract is modeled here, plus a
// small in-memory reference implementation for tests and the demo driver.
package accumulator

import (
	"errors"
	"sync"
)

// Builder constructs the bytes of one control-record batch given the base
// offset it will be appended at. It mirrors the teacher's habit of passing
// a builder callback into the accumulator (see raft/persister.go's
// serialize-then-hand-off style) rather than returning a batch value from
// append; the accumulator decides sizing and framing.
type Builder[T any] func(baseOffset int64) []T

// Accumulator is the batch accumulator's append/drain contract.
type Accumulator[T any] interface {
	// AppendControlMessages hands the accumulator a builder for one
	// control batch. The accumulator is responsible for allocating the
	// base offset and committing the built records atomically.
	AppendControlMessages(build Builder[T]) error
	// ForceDrain flushes any buffered batch immediately instead of
	// waiting for the accumulator's normal linger/size trigger, so that
	// control records ship in their own batch.
	ForceDrain()
	// Close releases the accumulator's resources.
	Close() error
}

// InMemory is a minimal Accumulator used by tests and the demo driver: it
// keeps every drained batch in memory rather than writing to a real log
// segment.
type InMemory[T any] struct {
	mu         sync.Mutex
	nextOffset int64
	pending    []T
	drained    [][]T
	closed     bool
}

// NewInMemory builds an InMemory accumulator starting at baseOffset.
func NewInMemory[T any](baseOffset int64) *InMemory[T] {
	return &InMemory[T]{nextOffset: baseOffset}
}

func (a *InMemory[T]) AppendControlMessages(build Builder[T]) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	batch := build(a.nextOffset)
	a.pending = append(a.pending, batch...)
	a.nextOffset += int64(len(batch))
	return nil
}

func (a *InMemory[T]) ForceDrain() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return
	}
	a.drained = append(a.drained, a.pending)
	a.pending = nil
}

func (a *InMemory[T]) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// DrainedBatches returns every batch flushed so far, for assertions in
// tests and inspection from the demo driver.
func (a *InMemory[T]) DrainedBatches() [][]T {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]T, len(a.drained))
	copy(out, a.drained)
	return out
}

// ErrClosed is returned by AppendControlMessages once the accumulator has
// been closed.
var ErrClosed = errors.New("accumulator: closed")
