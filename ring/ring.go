package ring

import (
	"math/bits"
	"sync/atomic"
)

// MinCapacity is the smallest ring that New will build.
const MinCapacity = 2

type cell[T any] struct {
	seq   atomic.Uint64
	value T
}

type pad [64]byte

// Ring is a fixed-capacity FIFO safe for any number of producers and
// consumers.
type Ring[T any] struct {
	mask  uint64
	cells []cell[T]

	_       pad
	enqueue atomic.Uint64
	_       pad
	dequeue atomic.Uint64
	_       pad
}

// New returns a ring holding at least capacity values. The capacity is
// rounded up to the next power of two.
func New[T any](capacity int) *Ring[T] {
	size := roundUp(capacity)
	r := &Ring[T]{
		mask:  uint64(size - 1),
		cells: make([]cell[T], size),
	}
	for i := range r.cells {
		r.cells[i].seq.Store(uint64(i))
	}
	return r
}

func roundUp(n int) int {
	if n <= MinCapacity {
		return MinCapacity
	}
	return 1 << bits.Len(uint(n-1))
}

// Push appends v. It reports false without blocking when the ring is full.
func (r *Ring[T]) Push(v T) bool {
	pos := r.enqueue.Load()
	for {
		c := &r.cells[pos&r.mask]
		seq := c.seq.Load()
		switch dif := int64(seq) - int64(pos); {
		case dif == 0:
			if r.enqueue.CompareAndSwap(pos, pos+1) {
				c.value = v
				c.seq.Store(pos + 1)
				return true
			}
			pos = r.enqueue.Load()
		case dif < 0:
			return false
		default:
			pos = r.enqueue.Load()
		}
	}
}

// Pop removes the oldest value. It reports false without blocking when the
// ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	pos := r.dequeue.Load()
	for {
		c := &r.cells[pos&r.mask]
		seq := c.seq.Load()
		switch dif := int64(seq) - int64(pos+1); {
		case dif == 0:
			if r.dequeue.CompareAndSwap(pos, pos+1) {
				v := c.value
				c.value = zero
				c.seq.Store(pos + r.mask + 1)
				return v, true
			}
			pos = r.dequeue.Load()
		case dif < 0:
			return zero, false
		default:
			pos = r.dequeue.Load()
		}
	}
}

// Len returns the number of values currently queued. Under concurrent use
// the result is a snapshot.
func (r *Ring[T]) Len() int {
	head := r.dequeue.Load()
	tail := r.enqueue.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the fixed capacity of the ring.
func (r *Ring[T]) Cap() int {
	return len(r.cells)
}
