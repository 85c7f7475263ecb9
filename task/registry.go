package task

import (
	"fmt"
	"sync/atomic"

	"github.com/opd-ai/audionode/ring"
)

// Handle is a weak reference to a registered target. The zero Handle never
// resolves.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// String formats the handle for logs.
func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.index, h.gen)
}

type entry struct {
	gen    uint32
	target any
}

type slot struct {
	current atomic.Pointer[entry]
	gen     atomic.Uint32
}

// Registry maps Handles to live targets. Register, Release and Resolve are
// lock-free and safe from any goroutine.
type Registry struct {
	slots []slot
	free  *ring.Ring[uint32]
	live  atomic.Int64
}

// NewRegistry builds a registry with room for capacity live targets.
func NewRegistry(capacity int) (*Registry, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: registry capacity %d", ErrInvalidCapacity, capacity)
	}
	r := &Registry{
		slots: make([]slot, capacity),
		free:  ring.New[uint32](capacity),
	}
	for i := 0; i < capacity; i++ {
		r.free.Push(uint32(i))
	}
	return r, nil
}

// Register stores target and returns a fresh Handle for it.
func (r *Registry) Register(target any) (Handle, error) {
	if target == nil {
		return Handle{}, ErrNilTarget
	}
	idx, ok := r.free.Pop()
	if !ok {
		return Handle{}, ErrRegistryFull
	}

	s := &r.slots[idx]
	gen := s.gen.Add(1)
	if gen == 0 {
		// Generation 0 is reserved for the zero Handle.
		gen = s.gen.Add(1)
	}
	s.current.Store(&entry{gen: gen, target: target})
	r.live.Add(1)

	return Handle{index: idx, gen: gen}, nil
}

// Resolve returns the target behind h if it is still registered.
func (r *Registry) Resolve(h Handle) (any, bool) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, false
	}
	e := r.slots[h.index].current.Load()
	if e == nil || e.gen != h.gen {
		return nil, false
	}
	return e.target, true
}

// Valid reports whether h still resolves.
func (r *Registry) Valid(h Handle) bool {
	_, ok := r.Resolve(h)
	return ok
}

// Release invalidates h. It reports false when h was already stale.
func (r *Registry) Release(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return false
	}
	s := &r.slots[h.index]
	e := s.current.Load()
	if e == nil || e.gen != h.gen {
		return false
	}
	if !s.current.CompareAndSwap(e, nil) {
		return false
	}
	r.live.Add(-1)
	r.free.Push(h.index)
	return true
}

// Live returns the number of registered targets.
func (r *Registry) Live() int {
	return int(r.live.Load())
}

// Capacity returns the maximum number of live targets.
func (r *Registry) Capacity() int {
	return len(r.slots)
}
