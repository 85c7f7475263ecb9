// Package interfaces defines the byte-sink and byte-source abstractions the
// audio nodes write recordings to and load takes from.
//
// This package lets the same node code run against real files and against an
// in-memory simulation, supporting both production use and deterministic
// testing.
//
// # Core Interfaces
//
// [IStorage] opens named sinks and sources:
//
//	sink, err := storage.Create("take1.wav")
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
// [ISampleSink] is a sequential writer that can seek back to rewrite a
// header. [ISampleSource] is a seekable reader.
//
// # Implementation Selection
//
// The factory package creates implementations based on [StorageConfig]:
//   - UseSimulation=true: MemoryStorage from the testing package
//   - UseSimulation=false: FileStorage from the real package
//
// # Thread Safety
//
// IStorage implementations must be safe for concurrent use. A single sink or
// source is used by one goroutine at a time.
package interfaces
