package record

import (
	"sync"

	"github.com/google/uuid"
	"github.com/opd-ai/audionode/buffer"
	"github.com/opd-ai/audionode/graph"
	"github.com/opd-ai/audionode/interfaces"
	"github.com/opd-ai/audionode/task"
	"github.com/opd-ai/audionode/wav"
	"github.com/sirupsen/logrus"
)

// DefaultFileName is the output file used until SetFileName is called.
const DefaultFileName = "RecordedOutput.wav"

// Node is one instance of a recording node pair. Callers only ever hold the
// control instance.
type Node struct {
	graph.Sibling

	// Flags. Each instance keeps its own copy; the render copy is updated
	// through the control→render queue.
	recording bool
	paused    bool
	streaming bool
	take      uint64

	// Control instance only, guarded by mu. open holds every take whose
	// file has not been finalized yet, keyed by take number; last is the
	// current or most recent take.
	mu       sync.Mutex
	storage  interfaces.IStorage
	fileName string
	open     map[uint64]*takeFile
	last     *takeFile
	pcm      []byte

	// Render instance only.
	input []float64
}

// New creates a recording node pair named name inside ctx and returns the
// control instance. Takes are written through storage.
func New(ctx *graph.Context, name string, storage interfaces.IStorage) (*Node, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if storage == nil {
		return nil, ErrNilStorage
	}

	control := &Node{
		streaming: true,
		storage:   storage,
		fileName:  DefaultFileName,
		open:      make(map[uint64]*takeFile),
	}
	render := &Node{
		streaming: true,
		input:     make([]float64, ctx.Options().BufferSamples()),
	}
	if err := ctx.Pair(name, control, render); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "record.New",
		"node":      name,
		"id":        control.Identity().ID,
		"file_name": control.fileName,
	}).Info("Recording node created")

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

// SetFileName sets the output file for the next take to name with a ".wav"
// extension. A take already in progress keeps its file.
func (n *Node) SetFileName(name string) {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	n.fileName = name + ".wav"
	n.mu.Unlock()

	n.logger("Node.SetFileName").WithField("file_name", name+".wav").Debug("Output file name set")
}

// FileName returns the output file used by the next take.
func (n *Node) FileName() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fileName
}

// StartRecording opens the output file, writes a placeholder header and
// activates capture on the render side. It does nothing when a take is
// already running, when the pair has been torn down, or when the file
// cannot be opened.
func (n *Node) StartRecording() {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	log := n.logger("Node.StartRecording")
	if n.recording {
		log.Debug("Already recording, ignoring start")
		return
	}
	if !n.HasSibling() {
		log.Debug("No render sibling, ignoring start")
		return
	}

	// A stopped take still waiting for its acknowledgement keeps its file,
	// unless the new take is about to reopen the same name.
	for _, t := range n.open {
		if t.name == n.fileName {
			log.WithFields(logrus.Fields{
				"file_name": t.name,
				"take_id":   t.id,
			}).Warn("Output file still finalizing, closing it before reuse")
			n.finalize(t)
		}
	}

	sink, err := n.storage.Create(n.fileName)
	if err != nil {
		log.WithFields(logrus.Fields{
			"file_name": n.fileName,
			"error":     err.Error(),
		}).Warn("Failed to open recording file")
		return
	}

	opts := n.Context().Options()
	header := wav.NewHeader(opts.Channels, opts.SampleRate, 0)
	if _, err := header.WriteTo(sink); err != nil {
		sink.Close()
		log.WithFields(logrus.Fields{
			"file_name": n.fileName,
			"error":     err.Error(),
		}).Warn("Failed to write placeholder header")
		return
	}

	n.take++
	t := &takeFile{
		seq:  n.take,
		id:   uuid.New().String(),
		name: n.fileName,
		sink: sink,
	}
	n.open[t.seq] = t
	n.last = t
	n.recording = true

	if !n.Send(startRender, task.Args{Seq: n.take}) {
		log.Warn("Render queue full, render side not activated")
	}

	log.WithFields(logrus.Fields{
		"file_name": t.name,
		"take_id":   t.id,
		"streaming": n.streaming,
	}).Info("Recording started")
}

// StopRecording ends the take. Capture stops as soon as the render side
// sees the stop, and the file is finalized once the render side
// acknowledges it: that takes one render tick followed by one ControlTick.
// Until then the file carries its placeholder header and IsFinalizing
// reports true. Without a running render loop the take stays open until
// Destroy. Stopping when not recording does nothing.
func (n *Node) StopRecording() {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	log := n.logger("Node.StopRecording")
	if !n.recording {
		log.Debug("Not recording, ignoring stop")
		return
	}
	n.recording = false

	if !n.Send(stopRender, task.Args{Seq: n.take}) {
		// Nobody will acknowledge the stop; finish with what has arrived.
		n.finalize(n.last)
		return
	}

	log.WithField("take_id", n.last.id).Info("Recording stopping")
}

// SetPaused suspends or resumes capture without ending the take.
func (n *Node) SetPaused(paused bool) {
	n.mu.Lock()
	n.paused = paused
	n.mu.Unlock()

	if n.IsControl() {
		n.Send(setPausedRender, task.Args{Flag: paused})
		n.logger("Node.SetPaused").WithField("paused", paused).Debug("Pause state changed")
	}
}

// GetPaused reports whether capture is paused.
func (n *Node) GetPaused() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.paused
}

// SetStreamToDisk selects streaming mode (true, each buffer written as it
// arrives) or buffered mode (false, samples held in memory until the take
// is finalized). Buffers captured after the change use the new mode.
func (n *Node) SetStreamToDisk(stream bool) {
	n.mu.Lock()
	n.streaming = stream
	n.mu.Unlock()

	if n.IsControl() {
		n.Send(setStreamingRender, task.Args{Flag: stream})
		n.logger("Node.SetStreamToDisk").WithField("streaming", stream).Debug("Streaming mode changed")
	}
}

// GetStreamToDisk reports whether streaming mode is selected.
func (n *Node) GetStreamToDisk() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.streaming
}

// IsRecording reports whether a take is running.
func (n *Node) IsRecording() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.recording
}

// IsFinalizing reports whether a stopped take is still waiting to be
// written out and closed.
func (n *Node) IsFinalizing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range n.open {
		if !n.isActive(t) {
			return true
		}
	}
	return false
}

// SamplesWritten returns the number of samples of the current or last take
// that are on disk.
func (n *Node) SamplesWritten() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return 0
	}
	return n.last.samplesWritten
}

// BufferedSamples returns the number of samples of the current or last take
// held in memory waiting to be written.
func (n *Node) BufferedSamples() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return 0
	}
	return len(n.last.buffered)
}

// TakeID returns the identifier of the current or last take, used to
// correlate its log entries. It is empty before the first take.
func (n *Node) TakeID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return ""
	}
	return n.last.id
}

// Channels returns the channel count latched from the most recent buffer
// of the current or last take, or 0 before the first buffer arrives.
func (n *Node) Channels() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return 0
	}
	return n.last.channels
}

// Destroy finalizes every open take and tears down the pair.
func (n *Node) Destroy() {
	if !n.IsControl() {
		return
	}
	n.mu.Lock()
	n.recording = false
	for _, t := range n.open {
		n.finalize(t)
	}
	n.mu.Unlock()

	n.Teardown()
	n.logger("Node.Destroy").Info("Recording node destroyed")
}

// RenderSamples passes input through to out and, while a take is active,
// hands a copy of the tick to the control instance.
func (n *Node) RenderSamples(out []float64, channels int, input graph.InputSource, firstRequest bool) bool {
	if n.IsControl() {
		return false
	}

	hasInput := false
	if input != nil {
		n.input = buffer.Fit(n.input, len(out))
		hasInput = input.AccumulateInputSamples(n.input, channels)
	}
	if hasInput {
		copy(out, n.input)
	}

	if n.recording && !n.paused && firstRequest && n.HasSibling() {
		if !hasInput {
			buffer.Zero(out)
		}
		if block := n.Context().AcquireBlock(); block != nil {
			if block.Fill(out, channels) {
				n.Send(writeBuffer, task.Args{
					Block:    block,
					Channels: channels,
					Flag:     n.streaming,
					Seq:      n.take,
				})
			} else {
				block.Release()
			}
		}
	}

	return hasInput
}
