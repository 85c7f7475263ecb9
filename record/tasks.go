package record

import (
	"github.com/opd-ai/audionode/task"
)

// Render side.

func startRender(target any, args task.Args) {
	n := target.(*Node)
	n.recording = true
	n.take = args.Seq
}

func stopRender(target any, args task.Args) {
	n := target.(*Node)
	n.recording = false
	n.Send(finishTake, task.Args{Seq: args.Seq})
}

func setPausedRender(target any, args task.Args) {
	target.(*Node).paused = args.Flag
}

func setStreamingRender(target any, args task.Args) {
	target.(*Node).streaming = args.Flag
}

// Control side.

func writeBuffer(target any, args task.Args) {
	defer args.Block.Release()

	n := target.(*Node)
	n.mu.Lock()
	defer n.mu.Unlock()

	n.write(args.Block.Samples(), args.Channels, args.Flag, args.Seq)
}

func finishTake(target any, args task.Args) {
	n := target.(*Node)
	n.mu.Lock()
	defer n.mu.Unlock()

	t, ok := n.open[args.Seq]
	if !ok || n.isActive(t) {
		return
	}
	n.finalize(t)
}
