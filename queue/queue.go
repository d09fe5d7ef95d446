// Package queue provides the unbounded hand-off used between a blocking
// producer goroutine and the non-blocking chat loop.
package queue

import (
	"errors"
	"sync"
)

// ErrClosed is reported by TryPop once the producer closed the queue
// without a more specific cause and every item has been consumed.
var ErrClosed = errors.New("queue closed")

// Queue is an unbounded FIFO with a single producer and a single consumer.
// Push never blocks and TryPop never waits. Ready delivers a signal
// whenever there is something for the consumer to look at: a pending item
// or the terminal close.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	err    error
	ready  chan struct{}
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
	}
}

// Push appends an item. It returns false if the queue is already closed.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, item)
	q.signal()
	return true
}

// Close marks the end of production. Items already queued are still
// delivered; afterwards TryPop reports err (or ErrClosed when err is nil).
// Only the first call has an effect.
func (q *Queue[T]) Close(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	if err == nil {
		err = ErrClosed
	}
	q.closed = true
	q.err = err
	q.signal()
}

// TryPop removes the oldest item without waiting.
//
// It returns (item, true, nil) when an item was available,
// (zero, false, nil) when the queue is empty but still open, and
// (zero, false, err) once the queue is closed and drained.
func (q *Queue[T]) TryPop() (T, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		if q.closed {
			return zero, false, q.err
		}
		return zero, false, nil
	}

	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Drop the backing array so a burst does not pin memory.
		q.items = nil
	}

	// Keep the signal armed while work remains.
	if len(q.items) > 0 || q.closed {
		q.signal()
	}
	return item, true, nil
}

// Ready returns the readiness channel. A receive on it means TryPop has
// something to report; it does not guarantee an item.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// signal must be called with mu held.
func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
