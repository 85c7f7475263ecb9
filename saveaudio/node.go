package saveaudio

import (
	"fmt"
	"sync"

	"github.com/opd-ai/audionode/buffer"
	"github.com/opd-ai/audionode/graph"
	"github.com/opd-ai/audionode/interfaces"
	"github.com/opd-ai/audionode/resample"
	"github.com/opd-ai/audionode/task"
	"github.com/opd-ai/audionode/wav"
	"github.com/sirupsen/logrus"
)

// Node is one instance of a save/playback node pair. Callers only ever hold
// the control instance.
type Node struct {
	graph.Sibling

	saveData bool
	playData bool
	playSeq  uint64

	// Control instance only, guarded by mu.
	mu         sync.Mutex
	storage    interfaces.IStorage
	onFinished func()

	// Render instance only.
	saved  []float64
	cursor int
	input  []float64
}

// New creates a save/playback node pair named name inside ctx and returns
// the control instance. storage is only needed by LoadSavedAudio and may be
// nil.
func New(ctx *graph.Context, name string, storage interfaces.IStorage) (*Node, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	control := &Node{storage: storage}
	render := &Node{input: make([]float64, ctx.Options().BufferSamples())}
	if err := ctx.Pair(name, control, render); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "saveaudio.New",
		"node":     name,
		"id":       control.Identity().ID,
	}).Info("Save audio node created")

	return control, nil
}

func (n *Node) logger(function string) *logrus.Entry {
	id := n.Identity()
	return logrus.WithFields(logrus.Fields{
		"function": function,
		"node":     id.Name,
		"id":       id.ID,
	})
}

// SetSaveAudio turns capture on or off. Turning it on discards any stored
// samples and rewinds the cursor first.
func (n *Node) SetSaveAudio(save bool) {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	n.saveData = save
	n.mu.Unlock()

	n.Send(setSaveRender, task.Args{Flag: save})
	n.logger("Node.SetSaveAudio").WithField("save", save).Debug("Capture state changed")
}

// GetSaveAudio reports whether capture is on.
func (n *Node) GetSaveAudio() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.saveData
}

// PlaySavedAudio starts playback from the current cursor.
func (n *Node) PlaySavedAudio() {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	n.playData = true
	n.playSeq++
	seq := n.playSeq
	n.mu.Unlock()

	n.Send(playRender, task.Args{Seq: seq})
	n.logger("Node.PlaySavedAudio").Debug("Playback requested")
}

// StopPlaying stops playback, keeping the cursor where it is.
func (n *Node) StopPlaying() {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	n.playData = false
	n.mu.Unlock()

	n.Send(stopRender, task.Args{})
	n.logger("Node.StopPlaying").Debug("Playback stop requested")
}

// IsPlaying reports whether playback is active. It turns false when the
// render side reports the end of the store, which happens on a later
// control tick.
func (n *Node) IsPlaying() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.playData
}

// ClearSavedAudio empties the store and rewinds the cursor.
func (n *Node) ClearSavedAudio() {
	if !n.IsControl() {
		return
	}
	n.Send(clearRender, task.Args{})
	n.logger("Node.ClearSavedAudio").Debug("Clear requested")
}

// OnPlaybackFinished registers fn to run on the control side each time
// playback reaches the end of the store.
func (n *Node) OnPlaybackFinished(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onFinished = fn
}

// LoadSavedAudio decodes the 16-bit PCM WAV stored under name and replaces
// the store with its samples, cursor rewound. Files recorded at another
// sample rate are converted to the graph rate.
func (n *Node) LoadSavedAudio(name string) error {
	if !n.IsControl() {
		return nil
	}
	if n.storage == nil {
		return ErrNoStorage
	}
	if !n.HasSibling() {
		return ErrNotPaired
	}

	src, err := n.storage.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	samples, format, err := wav.Decode(src)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	opts := n.Context().Options()
	if format.NumChannels != opts.Channels {
		return fmt.Errorf("%w: %s has %d channels, graph has %d",
			ErrChannelMismatch, name, format.NumChannels, opts.Channels)
	}
	if uint32(format.SampleRate) != opts.SampleRate {
		r, err := resample.New(resample.Config{
			InputRate:  uint32(format.SampleRate),
			OutputRate: opts.SampleRate,
			Channels:   opts.Channels,
		})
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if samples, err = r.Process(samples); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}

	if !n.Send(loadRender, task.Args{Value: samples}) {
		return ErrQueueFull
	}

	n.logger("Node.LoadSavedAudio").WithFields(logrus.Fields{
		"file_name":   name,
		"samples":     len(samples),
		"sample_rate": format.SampleRate,
	}).Info("Saved audio loaded")
	return nil
}

// Destroy tears down the pair.
func (n *Node) Destroy() {
	if !n.IsControl() {
		return
	}
	n.Teardown()
	n.logger("Node.Destroy").Info("Save audio node destroyed")
}

// RenderSamples captures and passes through input, then plays back the
// store over it while playback is active.
func (n *Node) RenderSamples(out []float64, channels int, input graph.InputSource, _ bool) bool {
	if n.IsControl() {
		return false
	}

	hasInput := false
	if input != nil {
		n.input = buffer.Fit(n.input, len(out))
		hasInput = input.AccumulateInputSamples(n.input, channels)
	}
	if hasInput {
		if n.saveData {
			n.saved = append(n.saved, n.input...)
		}
		copy(out, n.input)
	}

	if !n.playData {
		return hasInput
	}

	var count int
	remaining := n.saved[n.cursor:]
	if hasInput {
		count = buffer.Mix(out, remaining)
	} else {
		count = copy(out, remaining)
		buffer.Zero(out[count:])
	}

	n.cursor += count
	if n.cursor >= len(n.saved) {
		n.playData = false
		n.cursor = 0
		n.Send(playbackFinished, task.Args{Seq: n.playSeq})
	}

	return hasInput || count > 0
}
