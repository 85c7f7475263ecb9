// Package audionode implements recording and save/playback nodes for a
// real-time audio graph.
//
// Every node is a sibling pair: a control instance driven by ordinary
// goroutines and a render instance driven by the periodic render tick. The
// two never share mutable state; they talk through two bounded,
// non-blocking task queues owned by a graph context. This package provides
// the Engine facade that ties a graph context, storage and nodes together.
//
// # Getting Started
//
//	options := audionode.NewOptions()
//	options.Graph.Channels = 2
//
//	engine, err := audionode.New(options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Kill()
//
//	rec, err := engine.NewRecordNode("master")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.Connect(rec, input)
//
//	if err := engine.Start(nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	rec.SetFileName("session")
//	rec.StartRecording()
//
//	// Drive the control side
//	for engine.IsRunning() {
//	    engine.Iterate()
//	    time.Sleep(engine.IterationInterval())
//	}
//
// # Core Types
//
//   - [Engine]: owns the graph context, storage and nodes
//   - [Options]: configuration for creating an Engine
//   - [graph.Context]: task queues, handle registry, block pool, render tick
//   - [record.Node]: pass-through node that writes a 16-bit PCM WAV file
//   - [saveaudio.Node]: pass-through node that captures and plays back audio
//
// # Storage
//
// Recordings are written through an [interfaces.IStorage]. By default the
// engine asks [factory.StorageFactory] for one, which honours the
// AUDIONODE_USE_SIMULATION, AUDIONODE_OUTPUT_DIR and AUDIONODE_WRITE_BUFFER
// environment variables. Tests pass an in-memory store from the testing
// package through Options.Storage.
//
// # Threading
//
// The render tick never blocks and never allocates on the recording path:
// buffers handed to the control side come from a preallocated pool and
// queue submissions fail rather than wait. Control-side effects of the
// render tick, such as disk writes, happen when Iterate runs.
package audionode
