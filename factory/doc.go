// Package factory creates the storage implementation the recording and
// save/playback nodes write to.
//
// The factory abstracts the creation of storage so that the same engine
// code runs against the file system in production and against an in-memory
// simulation in tests.
//
// # Configuration
//
// The factory supports configuration via environment variables:
//   - AUDIONODE_USE_SIMULATION: "true" or "false" to select in-memory storage
//   - AUDIONODE_OUTPUT_DIR: directory that roots every recording name
//   - AUDIONODE_WRITE_BUFFER: sequential write buffer size in bytes
//
// Invalid values are logged and the default is kept.
//
//	f := factory.NewStorageFactory()
//	storage, err := f.CreateStorage()
package factory
