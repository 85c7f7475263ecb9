package graph

import (
	"fmt"
	"time"

	"github.com/opd-ai/audionode/limits"
)

// Options configures a Context.
type Options struct {
	// SampleRate is the system sample rate in Hz, written into recordings.
	SampleRate uint32
	// Channels is the interleaved channel count of every render tick.
	Channels int
	// FramesPerBuffer is the number of frames rendered per tick.
	FramesPerBuffer int
	// QueueCapacity bounds each task queue.
	QueueCapacity int
	// BlockPoolSize is the number of preallocated render→control blocks.
	BlockPoolSize int
	// MaxNodes bounds the number of live node instances (two per pair).
	MaxNodes int
}

// NewOptions returns Options with the engine defaults.
func NewOptions() *Options {
	return &Options{
		SampleRate:      48000,
		Channels:        2,
		FramesPerBuffer: 512,
		QueueCapacity:   1024,
		BlockPoolSize:   64,
		MaxNodes:        1024,
	}
}

// Validate checks the options against the engine limits.
func (o *Options) Validate() error {
	if err := limits.ValidateSampleRate(o.SampleRate); err != nil {
		return err
	}
	if err := limits.ValidateChannels(o.Channels); err != nil {
		return err
	}
	if err := limits.ValidateFramesPerBuffer(o.FramesPerBuffer); err != nil {
		return err
	}
	if o.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", o.QueueCapacity)
	}
	if o.BlockPoolSize <= 0 {
		return fmt.Errorf("block_pool_size must be positive, got %d", o.BlockPoolSize)
	}
	if o.MaxNodes < 2 {
		return fmt.Errorf("max_nodes must be at least 2, got %d", o.MaxNodes)
	}
	return nil
}

// BufferSamples returns the number of interleaved samples in one tick.
func (o Options) BufferSamples() int {
	return o.FramesPerBuffer * o.Channels
}

// BufferPeriod returns the wall-clock duration of one tick.
func (o Options) BufferPeriod() time.Duration {
	return time.Duration(o.FramesPerBuffer) * time.Second / time.Duration(o.SampleRate)
}
