// Package record implements the recording node: a pass-through node that
// captures everything flowing through it into a 16-bit PCM WAV file.
//
// A recording node is a sibling pair. The control instance returned by New
// owns the output file and is driven by the caller; the render instance
// lives on the render tick, passes its input through unchanged and hands a
// copy of each tick to the control side through the render→control queue.
// The render instance never touches the file.
//
// Basic usage:
//
//	ctx, _ := graph.NewContext(nil)
//	rec, _ := record.New(ctx, "mic", storage)
//	ctx.Connect(rec, input)
//
//	rec.SetFileName("take1")
//	rec.StartRecording()
//	// ... render ticks run, ctx.ControlTick() is called regularly ...
//	rec.StopRecording()
//
// StopRecording stops capture at once, but the file is finalized only after
// the render side has acknowledged the stop, so every buffer captured before
// the stop still reaches the file. Destroy finalizes synchronously.
package record
