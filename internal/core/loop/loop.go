// Package loop provides the single-threaded task queue that drives deferred work.
//
// Tasks are appended with Defer and executed by the host goroutine through
// RunPending or Drain. A task never runs inside the call that deferred it, so
// work scheduled from an event handler always starts after that handler has
// returned.
package loop

import (
	"context"
	"sync"
)

// Task is a unit of deferred work.
type Task = func()

// Queue is a FIFO of deferred tasks. Defer may be called from any goroutine;
// tasks only ever run on the goroutine that calls RunPending, Drain or Run.
type Queue struct {
	mu     sync.Mutex
	tasks  []Task
	notify chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Defer schedules t to run on a later turn of the loop.
func (q *Queue) Defer(t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pending returns the number of tasks waiting to run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Notify returns a channel that receives a value whenever tasks are deferred.
// Hosts use it to wake up and call RunPending.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}

// RunPending runs the tasks that were queued before the call, in order.
// Tasks deferred while these run are left for the next turn. It returns the
// number of tasks executed.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, t := range batch {
		t()
	}
	return len(batch)
}

// Drain runs turns until the queue is empty and returns the total number of
// tasks executed.
func (q *Queue) Drain() int {
	total := 0
	for {
		n := q.RunPending()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Run executes tasks as they arrive until ctx is cancelled. It is the host
// loop for callers without a UI event loop of their own.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}
