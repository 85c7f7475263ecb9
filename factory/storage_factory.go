package factory

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/opd-ai/audionode/interfaces"
	"github.com/opd-ai/audionode/real"
	"github.com/opd-ai/audionode/testing"
	"github.com/sirupsen/logrus"
)

// Validation constants for configuration bounds checking.
const (
	// DefaultWriteBufferSize is the sequential write buffer used for recordings.
	DefaultWriteBufferSize = 64 * 1024
	// MaxWriteBufferSize caps AUDIONODE_WRITE_BUFFER (16 MiB).
	MaxWriteBufferSize = 16 * 1024 * 1024
)

// StorageFactory creates storage implementations based on configuration.
// It is safe for concurrent use.
type StorageFactory struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.StorageConfig
}

// NewStorageFactory creates a new factory with default configuration and
// environment overrides applied.
func NewStorageFactory() *StorageFactory {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &StorageFactory{
		defaultConfig: defaultConfig,
	}
}

// createDefaultConfig initializes the default storage configuration.
// Recordings go to the working directory through a 64 KiB write buffer.
func createDefaultConfig() *interfaces.StorageConfig {
	return &interfaces.StorageConfig{
		UseSimulation:   false,
		Directory:       "",
		WriteBufferSize: DefaultWriteBufferSize,
	}
}

// applyEnvironmentOverrides updates configuration from AUDIONODE_* variables.
func applyEnvironmentOverrides(config *interfaces.StorageConfig) {
	parseSimulationSetting(config)
	parseDirectorySetting(config)
	parseWriteBufferSetting(config)
}

func parseSimulationSetting(config *interfaces.StorageConfig) {
	if useSimStr := os.Getenv("AUDIONODE_USE_SIMULATION"); useSimStr != "" {
		useSim, err := strconv.ParseBool(useSimStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseSimulationSetting",
				"env_var":     "AUDIONODE_USE_SIMULATION",
				"value":       useSimStr,
				"error":       err.Error(),
				"using_value": config.UseSimulation,
			}).Warn("Failed to parse AUDIONODE_USE_SIMULATION environment variable, using default")
			return
		}
		config.UseSimulation = useSim
	}
}

func parseDirectorySetting(config *interfaces.StorageConfig) {
	if dir := os.Getenv("AUDIONODE_OUTPUT_DIR"); dir != "" {
		config.Directory = dir
	}
}

// parseWriteBufferSetting validates AUDIONODE_WRITE_BUFFER is within
// [0, MaxWriteBufferSize]; zero disables buffering.
func parseWriteBufferSetting(config *interfaces.StorageConfig) {
	if sizeStr := os.Getenv("AUDIONODE_WRITE_BUFFER"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":    "parseWriteBufferSetting",
				"env_var":     "AUDIONODE_WRITE_BUFFER",
				"value":       sizeStr,
				"error":       err.Error(),
				"using_value": config.WriteBufferSize,
			}).Warn("Failed to parse AUDIONODE_WRITE_BUFFER environment variable, using default")
			return
		}
		if size < 0 || size > MaxWriteBufferSize {
			logrus.WithFields(logrus.Fields{
				"function":    "parseWriteBufferSetting",
				"env_var":     "AUDIONODE_WRITE_BUFFER",
				"value":       size,
				"max":         MaxWriteBufferSize,
				"using_value": config.WriteBufferSize,
			}).Warn("AUDIONODE_WRITE_BUFFER value out of bounds, using default")
			return
		}
		config.WriteBufferSize = size
	}
}

func logConfigurationInfo(config *interfaces.StorageConfig) {
	logrus.WithFields(logrus.Fields{
		"function":          "NewStorageFactory",
		"use_simulation":    config.UseSimulation,
		"directory":         config.Directory,
		"write_buffer_size": config.WriteBufferSize,
	}).Info("Created storage factory with configuration")
}

// CreateStorage creates a storage implementation from the default configuration.
func (f *StorageFactory) CreateStorage() (interfaces.IStorage, error) {
	return f.CreateStorageWithConfig(nil)
}

// CreateStorageWithConfig creates a storage implementation with a custom
// configuration. A nil config uses the factory default.
func (f *StorageFactory) CreateStorageWithConfig(config *interfaces.StorageConfig) (interfaces.IStorage, error) {
	if config == nil {
		config = f.GetCurrentConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}

	if config.UseSimulation {
		logrus.WithFields(logrus.Fields{
			"function": "CreateStorageWithConfig",
			"type":     "simulation",
		}).Info("Creating simulated storage")
		return testing.NewMemoryStorage(), nil
	}

	logrus.WithFields(logrus.Fields{
		"function":  "CreateStorageWithConfig",
		"type":      "real",
		"directory": config.Directory,
	}).Info("Creating file storage")
	return real.NewFileStorage(config), nil
}

// CreateSimulationForTesting returns in-memory storage regardless of configuration.
func (f *StorageFactory) CreateSimulationForTesting() *testing.MemoryStorage {
	return testing.NewMemoryStorage()
}

// SwitchToSimulation switches the default configuration to in-memory storage.
func (f *StorageFactory) SwitchToSimulation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaultConfig.UseSimulation = true
}

// SwitchToReal switches the default configuration to file storage.
func (f *StorageFactory) SwitchToReal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaultConfig.UseSimulation = false
}

// IsUsingSimulation returns true if the factory is configured for simulation
func (f *StorageFactory) IsUsingSimulation() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.defaultConfig.UseSimulation
}

// GetCurrentConfig returns a copy of the current default configuration
func (f *StorageFactory) GetCurrentConfig() *interfaces.StorageConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	cfg := *f.defaultConfig
	return &cfg
}

// UpdateConfig replaces the factory's default configuration
func (f *StorageFactory) UpdateConfig(config *interfaces.StorageConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":       "UpdateConfig",
		"old_simulation": f.defaultConfig.UseSimulation,
		"new_simulation": config.UseSimulation,
		"directory":      config.Directory,
	}).Info("Updating factory configuration")

	cfg := *config
	f.defaultConfig = &cfg
	return nil
}
