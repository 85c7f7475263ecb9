package wav

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFile(t *testing.T, channels int, rate uint32, samples []float64) []byte {
	t.Helper()
	b, err := NewHeader(channels, rate, uint64(len(samples))).MarshalBinary()
	require.NoError(t, err)
	return AppendPCM16(b, samples)
}

func TestDecode(t *testing.T) {
	in := []float64{0.5, -0.5, 0.25, -0.25}
	data := buildFile(t, 2, 48000, in)

	samples, format, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, format)
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, 48000, format.SampleRate)
	require.Len(t, samples, len(in))
	for i := range in {
		assert.InDelta(t, in[i], samples[i], 1.0/32767)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("definitely not a wav file at all, no sir")))
	assert.Error(t, err)
}
