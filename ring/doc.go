// Package ring provides a bounded, lock-free, multi-producer multi-consumer
// ring of values.
//
// The ring never blocks and never allocates after construction. Push fails
// when the ring is full and Pop fails when it is empty, so callers on a
// real-time path can decide locally what to do about back-pressure.
//
//	r := ring.New[int](8)
//	r.Push(1)
//	v, ok := r.Pop()
//
// Each slot carries a sequence number that tells producers and consumers
// whether the slot is free for the current lap. Head and tail counters are
// padded onto separate cache lines.
package ring
