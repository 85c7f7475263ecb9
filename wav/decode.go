package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Decode reads a PCM16 WAV stream and returns its interleaved samples as
// floats together with the stream format.
func Decode(r io.ReadSeeker) ([]float64, *audio.Format, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, nil, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrInvalidHeader)
	}
	if d.WavAudioFormat != formatPCM || d.BitDepth != bitsPerSample {
		return nil, nil, fmt.Errorf("%w: format=%d bits=%d", ErrUnsupportedFormat, d.WavAudioFormat, d.BitDepth)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("decode pcm: %w", err)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = DecodeSample(int16(v))
	}
	return samples, buf.Format, nil
}
