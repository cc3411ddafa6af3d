// Package pipe provides a small blocking FIFO queue used to bridge
// push-based event callbacks into pull-based consumers.
//
// A producer calls Push from its callback; a consumer loops on Next. The
// "queue empty, then wait" check runs under the queue lock, so a Push that
// races with a blocked Next can never be missed.
package pipe

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDone is returned by Next once the write side is closed and the queue
// has been drained.
var ErrDone = errors.New("pipe: done")

// Queue is an unbounded FIFO queue safe for concurrent producers and
// consumers. The zero value is not usable; use New.
type Queue[T any] struct {
	cond *sync.Cond

	mu         sync.Mutex
	items      []T
	closeWrite bool
	closeErr   error
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the queue and wakes one blocked consumer.
// It fails if the queue has been closed.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return fmt.Errorf("pipe: push to closed queue: %w", q.closeErr)
	}
	if q.closeWrite {
		return errors.New("pipe: push after CloseWrite")
	}
	q.items = append(q.items, v)
	q.cond.Signal()
	return nil
}

// Next removes and returns the oldest element, blocking while the queue is
// empty. Once the write side is closed it drains any remaining elements and
// then returns ErrDone. If the queue was closed with an error, that error is
// returned immediately.
func (q *Queue[T]) Next() (v T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		err = q.closeErr
		return
	}
	for len(q.items) == 0 {
		if q.closeWrite {
			err = ErrDone
			return
		}
		q.cond.Wait()
		if q.closeErr != nil {
			err = q.closeErr
			return
		}
	}
	v = q.items[0]
	q.items = q.items[1:]
	return v, nil
}

// CloseWrite closes the write side. Elements already queued remain readable;
// Next returns ErrDone once they are drained. Idempotent.
func (q *Queue[T]) CloseWrite() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeWrite {
		return
	}
	q.closeWrite = true
	q.cond.Broadcast()
}

// CloseWithError tears the queue down: queued elements are discarded and all
// blocked and future calls return err. A nil err closes with ErrDone. Only
// the first close takes effect.
func (q *Queue[T]) CloseWithError(err error) {
	if err == nil {
		err = ErrDone
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return
	}
	q.closeErr = err
	q.closeWrite = true
	q.items = nil
	q.cond.Broadcast()
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
