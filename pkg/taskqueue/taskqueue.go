// Package taskqueue runs deferred units of work after the request that
// scheduled them has already been answered.
package taskqueue

import (
	"context"
	"log/slog"
	"sync"
)

type task struct {
	name string
	fn   func(context.Context) error
}

// Queue is a fixed worker pool with fire-and-forget semantics: Submit
// returns as soon as the task is registered, and a task's error or panic is
// logged, never propagated back to the submitter.
type Queue struct {
	log   *slog.Logger
	tasks chan task
	wg    sync.WaitGroup
}

func New(log *slog.Logger, workers, buffer int) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		log:   log,
		tasks: make(chan task, buffer),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Submit registers fn for out-of-band execution. Tasks have no ordering
// guarantee relative to each other.
func (q *Queue) Submit(name string, fn func(context.Context) error) {
	q.tasks <- task{name: name, fn: fn}
}

// Close stops accepting tasks and blocks until the queued ones have run.
func (q *Queue) Close() {
	close(q.tasks)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for t := range q.tasks {
		q.run(t)
	}
}

func (q *Queue) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("deferred task panicked", "task", t.name, "panic", r)
		}
	}()
	if err := t.fn(context.Background()); err != nil {
		q.log.Error("deferred task failed", "task", t.name, "error", err)
	}
}
