package saveaudio

import "github.com/opd-ai/audionode/task"

// Render side.

func setSaveRender(target any, args task.Args) {
	n := target.(*Node)
	if args.Flag {
		n.saved = n.saved[:0]
		n.cursor = 0
	}
	n.saveData = args.Flag
}

func playRender(target any, args task.Args) {
	n := target.(*Node)
	n.playData = true
	n.playSeq = args.Seq
}

func stopRender(target any, _ task.Args) {
	target.(*Node).playData = false
}

func clearRender(target any, _ task.Args) {
	n := target.(*Node)
	n.saved = n.saved[:0]
	n.cursor = 0
}

func loadRender(target any, args task.Args) {
	n := target.(*Node)
	samples, _ := args.Value.([]float64)
	n.saved = samples
	n.cursor = 0
}

// Control side.

func playbackFinished(target any, args task.Args) {
	n := target.(*Node)

	n.mu.Lock()
	if args.Seq != n.playSeq || !n.playData {
		n.mu.Unlock()
		return
	}
	n.playData = false
	fn := n.onFinished
	n.mu.Unlock()

	n.logger("playbackFinished").Debug("Playback reached end of saved audio")
	if fn != nil {
		fn()
	}
}
