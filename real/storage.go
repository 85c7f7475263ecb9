package real

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrDirectoryTraversal indicates a name that would escape the storage directory.
var ErrDirectoryTraversal = errors.New("path contains directory traversal")

// FileStorage implements interfaces.IStorage on the local file system.
type FileStorage struct {
	config interfaces.StorageConfig
}

// NewFileStorage creates a file storage rooted at config.Directory.
func NewFileStorage(config *interfaces.StorageConfig) *FileStorage {
	cfg := interfaces.StorageConfig{}
	if config != nil {
		cfg = *config
	}

	logrus.WithFields(logrus.Fields{
		"function":          "NewFileStorage",
		"directory":         cfg.Directory,
		"write_buffer_size": cfg.WriteBufferSize,
	}).Info("Creating file storage")

	return &FileStorage{config: cfg}
}

// resolve maps a storage name to a file system path.
func (s *FileStorage) resolve(name string) (string, error) {
	if s.config.Directory == "" {
		return filepath.Clean(name), nil
	}

	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || escapesRoot(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrDirectoryTraversal, name)
	}
	return filepath.Join(s.config.Directory, cleaned), nil
}

// escapesRoot reports whether a cleaned relative path climbs above its root.
func escapesRoot(cleaned string) bool {
	return cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator))
}

// Create implements interfaces.IStorage.Create
func (s *FileStorage) Create(name string) (interfaces.ISampleSink, error) {
	path, err := s.resolve(name)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FileStorage.Create",
			"name":     name,
			"error":    err.Error(),
		}).Warn("Rejected storage name")
		return nil, err
	}

	if s.config.Directory != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "FileStorage.Create",
		"path":     path,
	}).Debug("Opened file for sequential write")

	return newFileSink(f, s.config.WriteBufferSize), nil
}

// Open implements interfaces.IStorage.Open
func (s *FileStorage) Open(name string) (interfaces.ISampleSource, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// IsSimulation implements interfaces.IStorage.IsSimulation
func (s *FileStorage) IsSimulation() bool {
	return false
}

// fileSink buffers sequential writes and flushes before seeking.
type fileSink struct {
	file *os.File
	w    *bufio.Writer
}

func newFileSink(f *os.File, size int) *fileSink {
	sink := &fileSink{file: f}
	if size > 0 {
		sink.w = bufio.NewWriterSize(f, size)
	}
	return sink
}

func (s *fileSink) Write(p []byte) (int, error) {
	if s.w == nil {
		return s.file.Write(p)
	}
	return s.w.Write(p)
}

func (s *fileSink) Seek(offset int64, whence int) (int64, error) {
	if err := s.flush(); err != nil {
		return 0, err
	}
	return s.file.Seek(offset, whence)
}

func (s *fileSink) Close() error {
	flushErr := s.flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (s *fileSink) flush() error {
	if s.w == nil {
		return nil
	}
	return s.w.Flush()
}

var _ io.WriteSeeker = (*fileSink)(nil)
