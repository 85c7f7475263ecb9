package interfaces

import (
	"fmt"
	"io"
)

// ISampleSink is the byte sink a recording is streamed into.
type ISampleSink interface {
	io.Writer
	io.Seeker
	io.Closer
}

// ISampleSource is the byte source a stored take is read from.
type ISampleSource interface {
	io.Reader
	io.Seeker
	io.Closer
}

// IStorage opens named sinks and sources.
type IStorage interface {
	// Create opens name for sequential writing, truncating any previous content.
	Create(name string) (ISampleSink, error)

	// Open opens name for reading.
	Open(name string) (ISampleSource, error)

	// IsSimulation returns true if this is an in-memory implementation
	IsSimulation() bool
}

// StorageConfig holds configuration for storage implementations
type StorageConfig struct {
	// UseSimulation selects the in-memory implementation
	UseSimulation bool

	// Directory roots every name passed to Create and Open. Empty means names
	// are used as given.
	Directory string

	// WriteBufferSize is the size in bytes of the sequential write buffer
	WriteBufferSize int
}

// Validate checks the configuration.
func (c *StorageConfig) Validate() error {
	if c.WriteBufferSize < 0 {
		return fmt.Errorf("write_buffer_size must not be negative, got %d", c.WriteBufferSize)
	}
	return nil
}
