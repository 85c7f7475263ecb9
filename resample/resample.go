// Package resample converts interleaved float sample sequences between
// sample rates.
//
// It is used when a stored take recorded at one rate is loaded into a graph
// running at another. Conversion is linear interpolation over whole takes,
// which is adequate for previewing recordings and keeps the package free of
// filter design.
package resample

import (
	"errors"
	"fmt"

	"github.com/opd-ai/audionode/limits"
	"github.com/sirupsen/logrus"
)

// ErrMisaligned indicates input whose length is not a multiple of the
// channel count.
var ErrMisaligned = errors.New("input not aligned to channel count")

// Config holds configuration for creating a Resampler.
type Config struct {
	InputRate  uint32 // Input sample rate in Hz
	OutputRate uint32 // Output sample rate in Hz
	Channels   int    // Interleaved channel count
}

// Resampler converts whole takes from one sample rate to another.
type Resampler struct {
	inputRate  uint32
	outputRate uint32
	channels   int
}

// New creates a Resampler.
//
// Parameters:
//   - config: rates and channel count, validated against the engine limits
//
// Returns:
//   - *Resampler: the new resampler
//   - error: any validation error
func New(config Config) (*Resampler, error) {
	if err := limits.ValidateSampleRate(config.InputRate); err != nil {
		return nil, fmt.Errorf("input rate: %w", err)
	}
	if err := limits.ValidateSampleRate(config.OutputRate); err != nil {
		return nil, fmt.Errorf("output rate: %w", err)
	}
	if err := limits.ValidateChannels(config.Channels); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "resample.New",
		"input_rate":  config.InputRate,
		"output_rate": config.OutputRate,
		"channels":    config.Channels,
	}).Debug("Creating resampler")

	return &Resampler{
		inputRate:  config.InputRate,
		outputRate: config.OutputRate,
		channels:   config.Channels,
	}, nil
}

// InputRate returns the source sample rate in Hz.
func (r *Resampler) InputRate() uint32 { return r.inputRate }

// OutputRate returns the target sample rate in Hz.
func (r *Resampler) OutputRate() uint32 { return r.outputRate }

// OutputFrames returns the number of frames produced from inputFrames.
func (r *Resampler) OutputFrames(inputFrames int) int {
	if inputFrames == 0 {
		return 0
	}
	return int((uint64(inputFrames)*uint64(r.outputRate) + uint64(r.inputRate) - 1) / uint64(r.inputRate))
}

// Process returns input converted to the output rate. Equal rates return a
// copy of input.
//
// Parameters:
//   - input: interleaved samples at the input rate
//
// Returns:
//   - []float64: interleaved samples at the output rate
//   - error: ErrMisaligned when input is not whole frames
func (r *Resampler) Process(input []float64) ([]float64, error) {
	if len(input)%r.channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrMisaligned, len(input), r.channels)
	}
	if r.inputRate == r.outputRate {
		return append([]float64(nil), input...), nil
	}

	inFrames := len(input) / r.channels
	outFrames := r.OutputFrames(inFrames)
	out := make([]float64, outFrames*r.channels)
	step := float64(r.inputRate) / float64(r.outputRate)

	for frame := 0; frame < outFrames; frame++ {
		pos := float64(frame) * step
		idx := int(pos)
		frac := pos - float64(idx)
		next := idx + 1
		if next >= inFrames {
			next = inFrames - 1
		}
		for ch := 0; ch < r.channels; ch++ {
			a := input[idx*r.channels+ch]
			b := input[next*r.channels+ch]
			out[frame*r.channels+ch] = a + (b-a)*frac
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Resampler.Process",
		"in_frames":  inFrames,
		"out_frames": outFrames,
	}).Debug("Resampled take")

	return out, nil
}
