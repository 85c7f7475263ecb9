// Package graph provides the audio graph context that node pairs live in.
//
// # Domains
//
// Every node exists as a pair of instances sharing one Identity: a Control
// instance used by ordinary goroutines (UI, scripting, tests) and a Render
// instance used only from inside the render tick. The two instances never
// share mutable state. They talk through two one-directional task queues
// owned by the Context:
//
//	control ──(control→render queue, drained by RenderTick)──▶ render
//	control ◀──(render→control queue, drained by ControlTick)── render
//
// Each side keeps its own copy of the node's flags, so a change made on the
// control instance becomes visible to the render instance at the start of
// the next render tick.
//
// # Lifetime
//
// The control instance owns the pair. Sibling.Teardown releases the control
// handle immediately and sends a final teardown task to the render
// instance, which detaches itself from the render tick and releases its own
// handle. Tasks still queued for either instance after that are dropped.
//
// # Driving the graph
//
//	ctx, err := graph.NewContext(graph.NewOptions())
//	...
//	ctx.Connect(node, input)
//	out := make([]float64, ctx.Options().BufferSamples())
//	ctx.RenderTick(out)   // render goroutine, once per audio period
//	ctx.ControlTick()     // control goroutine, from its own loop
//
// Start runs RenderTick on its own goroutine at the buffer period.
package graph
