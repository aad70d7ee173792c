// Package queue implements the bounded/unbounded FIFO used to connect
// adjacent pipeline stages (spec.md §4.6), modeled on the teacher's
// mutex+condvar blocking-queue idiom (media/av/queue.Queue).
package queue

import (
	"sync"
	"time"
)

// Queue is a FIFO of interface{} items. A negative Capacity means
// unbounded: Enqueue never blocks. A non-negative Capacity bounds the
// queue; Enqueue on a full queue blocks until space frees up.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond

	items    []interface{}
	capacity int
	closed   bool
}

// New returns a queue with the given capacity; negative means unbounded.
func New(capacity int) *Queue {
	q := &Queue{capacity: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends item to the tail, blocking while the queue is full and
// open. Enqueue on a closed queue is a no-op.
func (q *Queue) Enqueue(item interface{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.capacity >= 0 && len(q.items) >= q.capacity && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return
	}
	q.items = append(q.items, item)
	q.cond.Broadcast()
}

// Dequeue removes and returns the head item, blocking until one is
// available or the queue is closed and drained, in which case it returns
// (nil, false).
func (q *Queue) Dequeue() (interface{}, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return nil, false
		}
		q.cond.Wait()
	}
	return q.pop(), true
}

// DequeueTimeout behaves like Dequeue but gives up after d, returning
// (nil, false) if no item became available in time.
func (q *Queue) DequeueTimeout(d time.Duration) (interface{}, bool) {
	deadline := time.Now().Add(d)

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return nil, false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false
		}
		timer := time.AfterFunc(remaining, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		q.cond.Wait()
		timer.Stop()
	}
	return q.pop(), true
}

func (q *Queue) pop() interface{} {
	item := q.items[0]
	q.items = q.items[1:]
	q.cond.Broadcast()
	return item
}

// Length reports the number of items currently queued.
func (q *Queue) Length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close wakes every blocked Enqueue/Dequeue. Queued items already present
// remain dequeuable; Dequeue only starts reporting (nil, false) once the
// queue is both closed and empty.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
