package task

import "github.com/opd-ai/audionode/buffer"

// Func is the body of a deferred call. target is the resolved Handle
// target, or nil for untargeted tasks.
type Func func(target any, args Args)

// Args are the captured arguments of a deferred call. Keeping them in a
// fixed struct lets a Task travel by value without a closure allocation.
type Args struct {
	Block    *buffer.Block
	Channels int
	Flag     bool
	// Seq is a caller-defined sequence number, such as a take counter.
	Seq   uint64
	Value any
}

// Task is one deferred call.
type Task struct {
	// Target addresses the object Fn runs against. A zero Target makes the
	// task untargeted: it always runs and receives a nil target.
	Target Handle
	Fn     Func
	Args   Args
}
