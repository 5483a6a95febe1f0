package room

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueClosed is returned when a task is enqueued after the queue was closed
var ErrQueueClosed = errors.New("queue is closed")

// Task is a notification side effect
type Task func(ctx context.Context) error

type drainWaiter struct {
	until uint64
	ch    chan struct{}
}

// Queue runs tasks one at a time in the order they were enqueued
// A failing task is logged and does not stop the tasks behind it
type Queue struct {
	ctx    context.Context
	logger logrus.FieldLogger

	lock  sync.Mutex
	tasks []Task
	// enqueued and attempted count tasks since the queue was created
	enqueued  uint64
	attempted uint64
	closed    bool
	waiters   []drainWaiter

	wake chan struct{}
	done chan struct{}
}

// NewQueue returns a queue and starts its worker
func NewQueue(logger logrus.FieldLogger) *Queue {
	q := &Queue{
		ctx:    context.Background(),
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go q.work()
	return q
}

// Enqueue appends the task to the queue
func (q *Queue) Enqueue(task Task) error {
	q.lock.Lock()
	if q.closed {
		q.lock.Unlock()
		return ErrQueueClosed
	}

	q.tasks = append(q.tasks, task)
	q.enqueued++
	q.lock.Unlock()

	q.signal()
	return nil
}

// Drain blocks until every task enqueued before the call has been attempted
// Tasks enqueued while draining are not waited for
func (q *Queue) Drain(ctx context.Context) error {
	q.lock.Lock()
	if q.attempted >= q.enqueued {
		q.lock.Unlock()
		return nil
	}

	ch := make(chan struct{})
	q.waiters = append(q.waiters, drainWaiter{until: q.enqueued, ch: ch})
	q.lock.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks. Tasks already enqueued still run
func (q *Queue) Close() {
	q.lock.Lock()
	q.closed = true
	q.lock.Unlock()

	q.signal()
}

// Done is closed once the queue is closed and empty
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) work() {
	defer close(q.done)

	for {
		q.lock.Lock()
		if len(q.tasks) == 0 {
			closed := q.closed
			q.lock.Unlock()

			if closed {
				return
			}

			<-q.wake
			continue
		}

		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.lock.Unlock()

		if err := q.run(task); err != nil {
			q.logger.WithError(err).Error("notification failed")
		}

		q.lock.Lock()
		q.attempted++
		waiting := q.waiters[:0]
		for _, w := range q.waiters {
			if w.until <= q.attempted {
				close(w.ch)
				continue
			}

			waiting = append(waiting, w)
		}
		q.waiters = waiting
		q.lock.Unlock()
	}
}

func (q *Queue) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return task(q.ctx)
}
