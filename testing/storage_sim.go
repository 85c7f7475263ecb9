package testing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSimulatedFailure is returned for names registered with FailCreate.
	ErrSimulatedFailure = errors.New("simulated storage failure")

	// ErrNotFound is returned when opening a name that was never created.
	ErrNotFound = errors.New("simulated file not found")

	// ErrClosed is returned for operations on a closed simulated file.
	ErrClosed = errors.New("simulated file closed")
)

// MemoryStorage implements interfaces.IStorage in memory.
type MemoryStorage struct {
	mu       sync.RWMutex
	files    map[string]*MemoryFile
	failures map[string]bool
	creates  int
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	logrus.WithFields(logrus.Fields{
		"function": "NewMemoryStorage",
	}).Debug("Creating simulated storage")

	return &MemoryStorage{
		files:    make(map[string]*MemoryFile),
		failures: make(map[string]bool),
	}
}

// FailCreate makes subsequent Create calls for name fail.
func (m *MemoryStorage) FailCreate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[name] = true
}

// Create implements interfaces.IStorage.Create
func (m *MemoryStorage) Create(name string) (interfaces.ISampleSink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failures[name] {
		return nil, fmt.Errorf("%w: create %s", ErrSimulatedFailure, name)
	}

	f := &MemoryFile{name: name}
	m.files[name] = f
	m.creates++
	return f, nil
}

// Open implements interfaces.IStorage.Open
func (m *MemoryStorage) Open(name string) (interfaces.ISampleSource, error) {
	m.mu.RLock()
	f, ok := m.files[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &memoryReader{Reader: bytes.NewReader(f.Bytes())}, nil
}

// IsSimulation implements interfaces.IStorage.IsSimulation
func (m *MemoryStorage) IsSimulation() bool {
	return true
}

// Put stores data under name as if it had been written and closed.
func (m *MemoryStorage) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &MemoryFile{name: name, data: append([]byte(nil), data...), closed: true}
}

// File returns the simulated file stored under name.
func (m *MemoryStorage) File(name string) (*MemoryFile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[name]
	return f, ok
}

// Bytes returns a copy of the content stored under name, or nil.
func (m *MemoryStorage) Bytes(name string) []byte {
	f, ok := m.File(name)
	if !ok {
		return nil
	}
	return f.Bytes()
}

// Names returns every name created so far.
func (m *MemoryStorage) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	return names
}

// CreateCount returns the number of successful Create calls.
func (m *MemoryStorage) CreateCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creates
}

// MemoryFile is a seekable in-memory sink.
type MemoryFile struct {
	mu      sync.Mutex
	name    string
	data    []byte
	pos     int64
	written int64
	closed  bool
}

// Write implements io.Writer, growing the file as needed.
func (f *MemoryFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}
	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[f.pos:end], p)
	f.pos = end
	f.written += int64(len(p))
	return len(p), nil
}

// Seek implements io.Seeker.
func (f *MemoryFile) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.pos + offset
	case io.SeekEnd:
		next = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position %d", next)
	}
	f.pos = next
	return next, nil
}

// Close implements io.Closer.
func (f *MemoryFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return nil
}

// Bytes returns a copy of the file content.
func (f *MemoryFile) Bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.data...)
}

// Size returns the current length of the file.
func (f *MemoryFile) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// BytesWritten returns the total bytes passed to Write, including rewrites.
func (f *MemoryFile) BytesWritten() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

// Closed reports whether Close has been called.
func (f *MemoryFile) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type memoryReader struct {
	*bytes.Reader
}

func (memoryReader) Close() error { return nil }
