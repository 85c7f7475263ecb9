package graph

import (
	"testing"
	"time"

	"github.com/opd-ai/audionode/limits"
	"github.com/stretchr/testify/assert"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()
	assert.NoError(t, o.Validate())
	assert.Equal(t, uint32(48000), o.SampleRate)
	assert.Equal(t, 1024, o.BufferSamples())
	assert.Equal(t, time.Duration(512)*time.Second/48000, o.BufferPeriod())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"bad_rate", func(o *Options) { o.SampleRate = 100 }},
		{"bad_channels", func(o *Options) { o.Channels = 0 }},
		{"bad_frames", func(o *Options) { o.FramesPerBuffer = limits.MaxFramesPerBuffer + 1 }},
		{"bad_queue", func(o *Options) { o.QueueCapacity = 0 }},
		{"bad_pool", func(o *Options) { o.BlockPoolSize = -1 }},
		{"bad_nodes", func(o *Options) { o.MaxNodes = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.mutate(o)
			assert.Error(t, o.Validate())
		})
	}
}
