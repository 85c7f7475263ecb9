// Package limits provides centralized bounds for the audio node engine.
// This package keeps the graph context, the recording node and the WAV codec
// agreeing on what a valid configuration and a valid take look like.
//
// # Bounds
//
//   - Channel count: 1 to MaxChannels interleaved channels. The WAV header
//     stores the count in a u16 and block align (channels×2) must fit too.
//
//   - Frames per buffer: 1 to MaxFramesPerBuffer frames per render tick.
//     A tick's buffer holds frames×channels samples.
//
//   - Sample rate: MinSampleRate to MaxSampleRate Hz.
//
//   - WAV payload: MaxWAVSamples 16-bit samples. The RIFF size field is a
//     u32 holding 36 + 2×samples, so a take cannot grow past this.
//
// # Validation Functions
//
//	if err := limits.ValidateChannels(opts.Channels); err != nil {
//	    return err
//	}
//
// All validation errors wrap ErrOutOfRange and can be classified with
// errors.Is.
package limits
