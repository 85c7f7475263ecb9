package real

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageCreateAndOpen(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(&interfaces.StorageConfig{Directory: dir, WriteBufferSize: 16})
	assert.False(t, storage.IsSimulation())

	sink, err := storage.Create("take.wav")
	require.NoError(t, err)

	_, err = sink.Write([]byte("xxxxHELLO"))
	require.NoError(t, err)

	// Rewrite the first four bytes after buffered data; the buffer must be
	// flushed before the seek lands.
	_, err = sink.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = sink.Write([]byte("RIFF"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(filepath.Join(dir, "take.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFFHELLO", string(data))

	src, err := storage.Open("take.wav")
	require.NoError(t, err)
	defer src.Close()
	got, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "RIFFHELLO", string(got))
}

func TestFileStorageUnbuffered(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(&interfaces.StorageConfig{Directory: dir})

	sink, err := storage.Create("raw.bin")
	require.NoError(t, err)
	_, err = sink.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(filepath.Join(dir, "raw.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFileStorageRejectsTraversal(t *testing.T) {
	storage := NewFileStorage(&interfaces.StorageConfig{Directory: t.TempDir()})

	tests := []string{"..", "../escape.wav", "a/../../escape.wav", "/etc/passwd"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := storage.Create(name)
			assert.ErrorIs(t, err, ErrDirectoryTraversal)
			_, err = storage.Open(name)
			assert.ErrorIs(t, err, ErrDirectoryTraversal)
		})
	}
}

func TestFileStorageAllowsDotsInNames(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(&interfaces.StorageConfig{Directory: dir})

	for _, name := range []string{"take..1.wav", "..take.wav"} {
		sink, err := storage.Create(name)
		require.NoError(t, err, name)
		require.NoError(t, sink.Close())

		_, err = os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestFileStorageCreateFailure(t *testing.T) {
	storage := NewFileStorage(nil)
	_, err := storage.Create(filepath.Join(t.TempDir(), "missing", "dir", "take.wav"))
	assert.Error(t, err)
}

func TestFileStorageNestedDirectory(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(&interfaces.StorageConfig{Directory: dir})

	sink, err := storage.Create(filepath.Join("session", "take.wav"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = os.Stat(filepath.Join(dir, "session", "take.wav"))
	assert.NoError(t, err)
}
