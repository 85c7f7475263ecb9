package saveaudio

import "errors"

var (
	// ErrNilContext indicates a node was created without a graph context.
	ErrNilContext = errors.New("save audio node requires a graph context")

	// ErrNoStorage indicates LoadSavedAudio was called on a node created
	// without storage.
	ErrNoStorage = errors.New("save audio node has no storage")

	// ErrChannelMismatch indicates a loaded file does not match the graph's
	// channel count.
	ErrChannelMismatch = errors.New("loaded audio channel count does not match graph")

	// ErrNotPaired indicates the pair has already been torn down.
	ErrNotPaired = errors.New("save audio node has no render sibling")

	// ErrQueueFull indicates a request could not be queued for the render side.
	ErrQueueFull = errors.New("render queue full")
)
