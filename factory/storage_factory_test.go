package factory

import (
	"testing"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUDIONODE_USE_SIMULATION", "")
	t.Setenv("AUDIONODE_OUTPUT_DIR", "")
	t.Setenv("AUDIONODE_WRITE_BUFFER", "")
}

func TestNewStorageFactoryDefaults(t *testing.T) {
	clearEnv(t)

	f := NewStorageFactory()
	cfg := f.GetCurrentConfig()
	assert.False(t, cfg.UseSimulation)
	assert.Empty(t, cfg.Directory)
	assert.Equal(t, DefaultWriteBufferSize, cfg.WriteBufferSize)
}

func TestEnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantSim   bool
		wantDir   string
		wantWrite int
	}{
		{
			name:      "all_valid",
			env:       map[string]string{"AUDIONODE_USE_SIMULATION": "true", "AUDIONODE_OUTPUT_DIR": "/tmp/rec", "AUDIONODE_WRITE_BUFFER": "1024"},
			wantSim:   true,
			wantDir:   "/tmp/rec",
			wantWrite: 1024,
		},
		{
			name:      "invalid_bool_keeps_default",
			env:       map[string]string{"AUDIONODE_USE_SIMULATION": "maybe"},
			wantWrite: DefaultWriteBufferSize,
		},
		{
			name:      "out_of_bounds_buffer_keeps_default",
			env:       map[string]string{"AUDIONODE_WRITE_BUFFER": "-5"},
			wantWrite: DefaultWriteBufferSize,
		},
		{
			name:      "unparsable_buffer_keeps_default",
			env:       map[string]string{"AUDIONODE_WRITE_BUFFER": "big"},
			wantWrite: DefaultWriteBufferSize,
		},
		{
			name:      "zero_buffer_allowed",
			env:       map[string]string{"AUDIONODE_WRITE_BUFFER": "0"},
			wantWrite: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := NewStorageFactory().GetCurrentConfig()
			assert.Equal(t, tt.wantSim, cfg.UseSimulation)
			assert.Equal(t, tt.wantDir, cfg.Directory)
			assert.Equal(t, tt.wantWrite, cfg.WriteBufferSize)
		})
	}
}

func TestCreateStorageSelectsImplementation(t *testing.T) {
	clearEnv(t)
	f := NewStorageFactory()

	storage, err := f.CreateStorage()
	require.NoError(t, err)
	assert.False(t, storage.IsSimulation())

	f.SwitchToSimulation()
	assert.True(t, f.IsUsingSimulation())
	storage, err = f.CreateStorage()
	require.NoError(t, err)
	assert.True(t, storage.IsSimulation())

	f.SwitchToReal()
	assert.False(t, f.IsUsingSimulation())
}

func TestCreateStorageWithInvalidConfig(t *testing.T) {
	clearEnv(t)
	f := NewStorageFactory()
	_, err := f.CreateStorageWithConfig(&interfaces.StorageConfig{WriteBufferSize: -1})
	assert.Error(t, err)
}

func TestUpdateConfig(t *testing.T) {
	clearEnv(t)
	f := NewStorageFactory()

	assert.Error(t, f.UpdateConfig(nil))

	cfg := &interfaces.StorageConfig{UseSimulation: true, Directory: "out"}
	require.NoError(t, f.UpdateConfig(cfg))

	cfg.Directory = "mutated"
	assert.Equal(t, "out", f.GetCurrentConfig().Directory, "factory keeps its own copy")
	assert.True(t, f.IsUsingSimulation())
}

func TestCreateSimulationForTesting(t *testing.T) {
	clearEnv(t)
	storage := NewStorageFactory().CreateSimulationForTesting()
	require.NotNil(t, storage)
	assert.True(t, storage.IsSimulation())
}
