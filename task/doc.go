// Package task implements the deferred calls that carry work between the
// control and render domains.
//
// A Task is a static function plus its arguments, addressed to a target
// through a Handle. Handles are generation-checked indexes into a Registry:
// once a target is released, every Handle minted for it stops resolving, so
// a task drained after its target was torn down is dropped instead of
// running against a dead object.
//
// A Queue is a bounded FIFO with any number of producers and exactly one
// consumer. Submit never blocks and never allocates; Drain runs the tasks
// that were queued when it started, in submission order.
//
//	reg, _ := task.NewRegistry(64)
//	q, _ := task.NewQueue("control->render", 256, reg)
//	h, _ := reg.Register(node)
//	q.Submit(task.Task{Target: h, Fn: startFn})
//	q.Drain()
package task
