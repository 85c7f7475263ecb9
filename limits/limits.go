package limits

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxChannels is the largest interleaved channel count accepted.
	MaxChannels = 32

	// MaxFramesPerBuffer is the largest render tick, in frames.
	MaxFramesPerBuffer = 16384

	// MinSampleRate is the lowest supported sample rate in Hz.
	MinSampleRate = 8000

	// MaxSampleRate is the highest supported sample rate in Hz.
	MaxSampleRate = 384000

	// WAVHeaderOverhead is the part of the RIFF size that is not sample data.
	WAVHeaderOverhead = 36

	// BytesPerSample is the width of one stored PCM sample.
	BytesPerSample = 2

	// MaxWAVSamples is the most 16-bit samples one take can hold before the
	// u32 RIFF size field overflows.
	MaxWAVSamples = (math.MaxUint32 - WAVHeaderOverhead) / BytesPerSample
)

// ErrOutOfRange indicates a value outside its allowed bounds.
var ErrOutOfRange = errors.New("value out of range")

// ValidateChannels checks an interleaved channel count.
func ValidateChannels(channels int) error {
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: channels %d not in [1, %d]", ErrOutOfRange, channels, MaxChannels)
	}
	return nil
}

// ValidateFramesPerBuffer checks the number of frames rendered per tick.
func ValidateFramesPerBuffer(frames int) error {
	if frames < 1 || frames > MaxFramesPerBuffer {
		return fmt.Errorf("%w: frames per buffer %d not in [1, %d]", ErrOutOfRange, frames, MaxFramesPerBuffer)
	}
	return nil
}

// ValidateSampleRate checks a sample rate in Hz.
func ValidateSampleRate(rate uint32) error {
	if rate < MinSampleRate || rate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d not in [%d, %d]", ErrOutOfRange, rate, MinSampleRate, MaxSampleRate)
	}
	return nil
}

// FitsWAV reports whether a take of total samples can still be described by
// a WAV header.
func FitsWAV(total uint64) bool {
	return total <= MaxWAVSamples
}
