// Package testing provides simulation infrastructure for deterministic tests
// of the audio node engine.
//
// # Overview
//
// This package implements an in-memory storage that mirrors the file-backed
// storage in the real package, plus a scripted input source that feeds known
// sample buffers into a render tick. Together they let tests drive the
// control and render domains tick by tick without touching the file system
// or an audio device.
//
// # Simulation vs Real Implementation
//
//   - Simulation (this package): sinks are byte slices kept in a map, with
//     per-name failure injection and write accounting.
//
//   - Real (real package): sinks are buffered OS files.
//
// Both implement interfaces.IStorage and are selected by the factory
// package.
//
// # Usage
//
//	storage := testing.NewMemoryStorage()
//	storage.FailCreate("locked.wav")
//
//	input := testing.NewScriptedInput(
//	    []float64{0.1, 0.2, 0.3, 0.4},
//	    nil, // a tick with no input
//	)
//
// # Package Name
//
// The package is named testing to pair with real; import it with an alias
// inside _test.go files that also need the standard library testing package.
package testing
