package audionode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/audionode/factory"
	"github.com/opd-ai/audionode/graph"
	"github.com/opd-ai/audionode/interfaces"
	"github.com/opd-ai/audionode/record"
	"github.com/opd-ai/audionode/saveaudio"
	"github.com/sirupsen/logrus"
)

// ErrKilled indicates an operation on an engine that has been killed.
var ErrKilled = errors.New("engine has been killed")

// Options contains configuration options for creating an Engine.
type Options struct {
	// Graph configures the render tick. Nil uses graph.NewOptions.
	Graph *graph.Options
	// Storage, when set, is used as is for every node.
	Storage interfaces.IStorage
	// StorageConfig selects real or simulated storage when Storage is nil.
	// Nil uses the factory defaults and AUDIONODE_* environment overrides.
	StorageConfig *interfaces.StorageConfig
	// IterationInterval is the recommended pause between Iterate calls.
	IterationInterval time.Duration
}

// NewOptions creates a new default Options.
func NewOptions() *Options {
	return &Options{
		Graph:             graph.NewOptions(),
		IterationInterval: 10 * time.Millisecond,
	}
}

type destroyer interface {
	Destroy()
}

// Engine owns one audio graph context, the storage used by its nodes and
// every node created through it.
type Engine struct {
	graph   *graph.Context
	storage interfaces.IStorage

	running       bool
	iterationTime time.Duration

	nodes      []destroyer
	nodesMutex sync.Mutex

	mu sync.RWMutex
}

// New creates an Engine. A nil options uses NewOptions.
func New(options *Options) (*Engine, error) {
	if options == nil {
		options = NewOptions()
	}

	g, err := graph.NewContext(options.Graph)
	if err != nil {
		return nil, err
	}

	storage := options.Storage
	if storage == nil {
		f := factory.NewStorageFactory()
		if options.StorageConfig != nil {
			storage, err = f.CreateStorageWithConfig(options.StorageConfig)
		} else {
			storage, err = f.CreateStorage()
		}
		if err != nil {
			return nil, fmt.Errorf("create storage: %w", err)
		}
	}

	interval := options.IterationInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}

	logrus.WithFields(logrus.Fields{
		"function":           "audionode.New",
		"simulated_storage":  storage.IsSimulation(),
		"iteration_interval": interval.String(),
	}).Info("Audio engine created")

	return &Engine{
		graph:         g,
		storage:       storage,
		running:       true,
		iterationTime: interval,
	}, nil
}

// Graph returns the engine's graph context.
func (e *Engine) Graph() *graph.Context {
	return e.graph
}

// Storage returns the storage shared by the engine's nodes.
func (e *Engine) Storage() interfaces.IStorage {
	return e.storage
}

func (e *Engine) track(n destroyer) {
	e.nodesMutex.Lock()
	e.nodes = append(e.nodes, n)
	e.nodesMutex.Unlock()
}

// NewRecordNode creates a recording node writing through the engine's
// storage.
func (e *Engine) NewRecordNode(name string) (*record.Node, error) {
	if !e.IsRunning() {
		return nil, ErrKilled
	}
	n, err := record.New(e.graph, name, e.storage)
	if err != nil {
		return nil, err
	}
	e.track(n)
	return n, nil
}

// NewSaveAudioNode creates a save/playback node that loads takes from the
// engine's storage.
func (e *Engine) NewSaveAudioNode(name string) (*saveaudio.Node, error) {
	if !e.IsRunning() {
		return nil, ErrKilled
	}
	n, err := saveaudio.New(e.graph, name, e.storage)
	if err != nil {
		return nil, err
	}
	e.track(n)
	return n, nil
}

// Connect attaches node to the render tick with input as its input.
func (e *Engine) Connect(node graph.Connectable, input graph.InputSource) bool {
	return e.graph.Connect(node, input)
}

// Disconnect detaches node from the render tick.
func (e *Engine) Disconnect(node graph.Connectable) bool {
	return e.graph.Disconnect(node)
}

// Start runs the render tick on its own goroutine, handing every tick to
// sink when sink is non-nil.
func (e *Engine) Start(sink graph.OutputSink) error {
	if !e.IsRunning() {
		return ErrKilled
	}
	return e.graph.Start(context.Background(), sink)
}

// Iterate performs a single control tick: it runs every task the render
// side has queued for the control side.
func (e *Engine) Iterate() int {
	return e.graph.ControlTick()
}

// IterationInterval returns the recommended interval between iterations.
func (e *Engine) IterationInterval() time.Duration {
	return e.iterationTime
}

// IsRunning checks if the engine is still running.
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Stats returns the graph counters.
func (e *Engine) Stats() graph.Stats {
	return e.graph.Stats()
}

// Kill stops the render tick, destroys every node created through the
// engine (finalizing open recordings) and marks the engine stopped.
func (e *Engine) Kill() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	if err := e.graph.Stop(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Engine.Kill",
			"error":    err.Error(),
		}).Warn("Failed to stop render loop")
	}

	// Let in-flight writes land before nodes close their files.
	e.graph.ControlTick()

	e.nodesMutex.Lock()
	nodes := e.nodes
	e.nodes = nil
	e.nodesMutex.Unlock()

	for _, n := range nodes {
		n.Destroy()
	}

	logrus.WithFields(logrus.Fields{
		"function": "Engine.Kill",
		"nodes":    len(nodes),
	}).Info("Audio engine stopped")
}
