package task

import (
	"fmt"
	"sync/atomic"

	"github.com/opd-ai/audionode/ring"
	"github.com/sirupsen/logrus"
)

// QueueStats is a point-in-time snapshot of queue counters.
type QueueStats struct {
	Name      string `json:"name"`
	Submitted uint64 `json:"submitted"`
	Executed  uint64 `json:"executed"`
	Stale     uint64 `json:"stale"`
	Overflow  uint64 `json:"overflow"`
	Pending   int    `json:"pending"`
	Capacity  int    `json:"capacity"`
}

// Queue is a bounded FIFO of deferred calls with one consumer.
type Queue struct {
	name     string
	tasks    *ring.Ring[Task]
	registry *Registry

	submitted atomic.Uint64
	executed  atomic.Uint64
	stale     atomic.Uint64
	overflow  atomic.Uint64
}

// NewQueue builds a queue that resolves targets through registry.
func NewQueue(name string, capacity int, registry *Registry) (*Queue, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: queue %q capacity %d", ErrInvalidCapacity, name, capacity)
	}
	if registry == nil {
		return nil, fmt.Errorf("queue %q: registry is required", name)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewQueue",
		"queue":    name,
		"capacity": capacity,
	}).Debug("Creating task queue")

	return &Queue{
		name:     name,
		tasks:    ring.New[Task](capacity),
		registry: registry,
	}, nil
}

// Name returns the queue's diagnostic name.
func (q *Queue) Name() string {
	return q.name
}

// Submit enqueues t. It never blocks; when the queue is full the task is
// discarded, any block it carries is released, and Submit reports false.
func (q *Queue) Submit(t Task) bool {
	if t.Fn == nil {
		t.Args.Block.Release()
		return false
	}
	if !q.tasks.Push(t) {
		q.overflow.Add(1)
		t.Args.Block.Release()
		return false
	}
	q.submitted.Add(1)
	return true
}

// Drain runs every task that was pending when Drain was called, oldest
// first, and returns how many ran. Tasks submitted while draining wait for
// the next Drain. Tasks whose target has been released are dropped and
// their block is returned to its pool.
func (q *Queue) Drain() int {
	pending := q.tasks.Len()
	ran := 0
	for i := 0; i < pending; i++ {
		t, ok := q.tasks.Pop()
		if !ok {
			break
		}
		if q.run(t) {
			ran++
		}
	}
	return ran
}

func (q *Queue) run(t Task) bool {
	var target any
	if !t.Target.IsZero() {
		v, ok := q.registry.Resolve(t.Target)
		if !ok {
			q.stale.Add(1)
			t.Args.Block.Release()
			return false
		}
		target = v
	}
	t.Fn(target, t.Args)
	q.executed.Add(1)
	return true
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	return q.tasks.Len()
}

// Stats returns a snapshot of the queue counters.
func (q *Queue) Stats() QueueStats {
	return QueueStats{
		Name:      q.name,
		Submitted: q.submitted.Load(),
		Executed:  q.executed.Load(),
		Stale:     q.stale.Load(),
		Overflow:  q.overflow.Load(),
		Pending:   q.tasks.Len(),
		Capacity:  q.tasks.Cap(),
	}
}
