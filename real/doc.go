// Package real provides the OS-file-backed storage used in production.
//
// This package implements interfaces.IStorage on top of the local file
// system. Sinks wrap the file in a write buffer sized for sequential access,
// and flush before every seek so that rewriting a WAV header in place never
// reorders bytes:
//
//	┌─────────────────────────────────────────┐
//	│             FileStorage                 │
//	│  ┌─────────────┐  ┌─────────────────┐   │
//	│  │  Directory  │  │ Traversal check │   │
//	│  │    root     │  │  (when rooted)  │   │
//	│  └─────────────┘  └─────────────────┘   │
//	└───────────────┬─────────────────────────┘
//	                │
//	                ▼
//	┌─────────────────────────────────────────┐
//	│    fileSink (bufio.Writer + *os.File)   │
//	└─────────────────────────────────────────┘
//
// # Usage
//
//	storage := real.NewFileStorage(&interfaces.StorageConfig{
//	    Directory:       "recordings",
//	    WriteBufferSize: 64 * 1024,
//	})
//	sink, err := storage.Create("take.wav")
//
// When Directory is set, names containing ".." are rejected with
// ErrDirectoryTraversal.
package real
